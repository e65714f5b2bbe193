package models

const (
	// NoDocumentAnswer is returned for queries against a record with no
	// chunks. It is a defined response, not an error.
	NoDocumentAnswer = "No document uploaded."

	DefaultChunkSize = 300

	// Strategy names as accepted over the wire. Lookup is case-insensitive
	// and anything unrecognized resolves to StrategyGenerativeA.
	StrategyGenerativeA = "bart"
	StrategyGenerativeB = "gpt2"
	StrategyExtractive  = "bert"
)

var (
	// GenerativeAPromptTemplate feeds the seq2seq-style default strategy.
	GenerativeAPromptTemplate = `question: %s context: %s`

	// GenerativeBPromptTemplate feeds the causal continuation strategy.
	GenerativeBPromptTemplate = "Context: %s\nQuestion: %s\nAnswer:"

	SummaryPromptTemplate = `Summarize the following document in a short abstractive summary of %d to %d words. Answer only with the summary and nothing else.
<document>
%s
</document>
`
)

// AllowedExtensions is the closed set of document types the service accepts.
// Anything else is rejected before it reaches the pipeline.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
}
