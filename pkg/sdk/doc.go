// Package sdk provides a Go client for the Funded Folk support
// chatbot API.
//
//	client, _ := sdk.New("http://localhost:8000")
//	answer, _ := client.Ask(ctx, "How do I get funded?")
//	fmt.Println(answer.Text)
//
// Conversations are stateless on the server; pass WithSession to keep
// a stable session id across related questions.
//
//	answer, _ = client.Ask(ctx, "And what does it cost?",
//	    sdk.WithSession(answer.SessionID),
//	)
//
// Error handling uses sentinel errors:
//
//	if errors.Is(err, sdk.ErrServiceUnavailable) {
//	    // index still building, try again later
//	}
package sdk
