// Package errors provides coded, structured errors for hx.
//
// Each error has a unique code (e.g., "E001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// Hook misuse in the host runtime panics with one of these errors, and the
// CLI prints them with Format.
//
// # Usage
//
//	err := errors.New("E002").
//	    WithDetail("expected 3 hooks, got 2").
//	    WithSuggestion("Call hooks unconditionally at the top of the render function")
//
//	fmt.Println(err.Format())
package errors
