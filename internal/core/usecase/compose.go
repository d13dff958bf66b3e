package usecase

import (
	"fmt"
	"strings"

	"ragdesk/internal/core/domain"
)

// ComposeAnswer turns a query and its retrieved context into the final answer
// for the given mode. All three modes are pure string templates; a real model
// integration replaces the placeholder text while keeping the context
// selection and formatting contract.
func ComposeAnswer(query string, context []domain.RetrievalResult, mode domain.RAGMode) string {
	switch mode {
	case domain.ModeFineTunedOnly:
		return fmt.Sprintf("Fine-tuned model response to: %s\n\n[This would be the output from your fine-tuned model]", query)

	case domain.ModeFineTunedWithRAG:
		if len(context) == 0 {
			return fmt.Sprintf("Fine-tuned model response (no relevant context found): %s", query)
		}
		blocks := make([]string, 0, len(context))
		for _, r := range context {
			blocks = append(blocks, fmt.Sprintf("From %s: %s", r.DocumentTitle, r.Content))
		}
		return fmt.Sprintf(
			"Fine-tuned model response based on context:\n\nQuery: %s\n\nRelevant context:\n%s\n\n[This would be the enhanced fine-tuned model response using the retrieved context]",
			query, strings.Join(blocks, "\n\n"),
		)

	default: // base_rag
		if len(context) == 0 {
			return fmt.Sprintf("I don't have relevant information to answer: %s\n\nPlease upload relevant documents to help me provide a better response.", query)
		}
		contents := make([]string, 0, len(context))
		titles := make([]string, 0, len(context))
		for _, r := range context {
			contents = append(contents, r.Content)
			titles = append(titles, r.DocumentTitle)
		}
		return fmt.Sprintf(
			"Based on the documents in your knowledge base:\n\nQuery: %s\n\nAnswer: Based on the retrieved information, here's what I found:\n\n%s\n\nSources: %s",
			query, strings.Join(contents, "\n\n"), strings.Join(titles, ", "),
		)
	}
}
