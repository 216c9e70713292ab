package cli

import (
	"encoding/json"
	"io"

	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
)

type resultOutput struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	ResponseCode  string            `json:"response_code"`
	Authorization string            `json:"authorization"`
	Category      string            `json:"category"`
	Test          bool              `json:"test"`
	Params        map[string]string `json:"params"`
	Duplicates    []string          `json:"duplicates,omitempty"`
}

// printResult writes the result as indented JSON and maps a failed result to ErrDeclined
func printResult(w io.Writer, result *ports.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(resultOutput{
		Success:       result.Success,
		Message:       result.Message,
		ResponseCode:  result.ResponseCode,
		Authorization: result.Authorization,
		Category:      string(result.Category),
		Test:          result.Test,
		Params:        result.Params,
		Duplicates:    result.Duplicates,
	}); err != nil {
		return err
	}

	if !result.Success {
		return ErrDeclined
	}
	return nil
}
