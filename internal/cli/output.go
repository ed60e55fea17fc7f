package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/RaimNist/web-larek/internal/model"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scenario expectations failed
	ExitCommandError = 2 // Command error (bad paths, bad flags, network)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure for errors that are not ExitErrors.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printer groups digits per the storefront's display locale, so a total
// of 1250 renders as "1,250 synapses".
var printer = message.NewPrinter(language.English)

// FormatSynapses renders an amount in the storefront currency.
func FormatSynapses(amount int) string {
	return printer.Sprintf("%d synapses", amount)
}

// FormatPrice renders a product price; priceless products show a dash.
func FormatPrice(price *int) string {
	if price == nil {
		return "—"
	}
	return FormatSynapses(*price)
}

// WriteJSON encodes v to w with indentation, for --format json output.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCatalog renders products as a text listing.
func WriteCatalog(w io.Writer, items []model.Product) {
	for _, item := range items {
		fmt.Fprintf(w, "%-20s  %-16s  %s\n", item.Title, item.Category, FormatPrice(item.Price))
	}
	fmt.Fprintf(w, "\n%d products\n", len(items))
}
