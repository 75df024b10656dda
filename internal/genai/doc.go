// Package genai is the boundary to the remote generative-content service.
//
// It defines the request and response shapes used by the enhancement
// operations and a REST client for the Gemini generateContent endpoint.
//
// # Error Enumeration
//
// Every failure leaving Client.GenerateContent is an *APIError carrying a
// google.golang.org/grpc/codes.Code. Error bodies are mapped by their status
// name, bare HTTP statuses by a fixed table, and transport failures to
// Unavailable, DeadlineExceeded, or Canceled. Retry decisions are made on this
// closed set of codes rather than on message text.
package genai
