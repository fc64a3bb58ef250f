package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/boatfinance/pkg/api"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// money formats dollars with thousands separators, e.g. $80,000.00.
func money(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}

	whole, frac := s[:len(s)-3], s[len(s)-3:]
	var b []byte
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, whole[i])
	}
	return sign + "$" + string(b) + frac
}

// describeError turns a Connect error into a one-line message with its code.
func describeError(err error) error {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err
	}
	code := connectErr.Meta().Get(api.ErrorCodeKey)
	if code == "" {
		code = connectErr.Code().String()
	}
	return fmt.Errorf("%s: %s", code, connectErr.Message())
}
