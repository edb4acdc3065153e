package ops

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/altinukshini/dnafinder/internal/api"
	"github.com/altinukshini/dnafinder/internal/config"
	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/session"
	"github.com/altinukshini/dnafinder/internal/validation"
)

const (
	FallbackLogin    = "Invalid credentials"
	FallbackRegister = "Registration failed"
	FallbackSearch   = "Search failed"
	FallbackHistory  = "Could not load history"
)

// Env bundles what every workflow needs.
type Env struct {
	Client    *api.Client
	Store     *session.Store
	Validator *validation.Validator
}

// Describe turns err into the line shown to the user: local validation
// messages as a sentence, otherwise the backend detail or fallback.
func Describe(err error, fallback string) string {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return sentence(fe.Error())
	}
	return api.Message(err, fallback)
}

func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// RunSearch validates in, then runs the search in the given mode. Nothing
// is sent when validation fails. On success the result is kept as the last
// result and also returned to the caller.
func RunSearch(ctx context.Context, env Env, in validation.SearchInput, mode config.SearchMode) (*model.SearchResult, error) {
	if err := env.Validator.Validate(in); err != nil {
		return nil, err
	}

	req := api.UploadRequest{FilePath: in.FilePath, Pattern: in.Pattern, Algorithm: in.Algorithm}

	var (
		result *model.SearchResult
		err    error
	)
	switch mode {
	case config.SearchModeSingle:
		result, err = env.Client.SearchMultipart(ctx, req)
	default:
		var up *api.UploadResponse
		up, err = env.Client.UploadCSV(ctx, req)
		if err != nil {
			return nil, err
		}
		// A failure past this point leaves the upload orphaned on the backend.
		result, err = env.Client.Search(ctx, api.SearchRequest{
			FileID:    up.FileID,
			Pattern:   in.Pattern,
			Algorithm: in.Algorithm,
		})
	}
	if err != nil {
		return nil, err
	}

	if err := env.Store.SaveResult(*result); err != nil {
		return result, fmt.Errorf("keep last result: %w", err)
	}
	return result, nil
}
