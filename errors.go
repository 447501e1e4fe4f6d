package main

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeHeaderParse  = "HEADER_PARSE_FAILED"
	codeDateParse    = "DATE_PARSE_FAILED"
	codeDocumentRead = "DOCUMENT_READ_FAILED"
	codeAssetMissing = "ASSET_MISSING"
	codeNoPosts      = "NO_POSTS"
)

var (
	ErrHeaderParse  = errors.New("malformed header block")
	ErrDateParse    = errors.New("unrecognized date")
	ErrDocumentRead = errors.New("document could not be read")
	ErrAssetMissing = errors.New("static asset missing")
	ErrNoPosts      = errors.New("no valid posts found")
)

func headerParseError(err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %v", ErrHeaderParse, err), goerrors.CategoryValidation, "header parse failed").
		WithTextCode(codeHeaderParse)
}

func dateParseError(value string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrDateParse, value), goerrors.CategoryValidation, "date parse failed").
		WithTextCode(codeDateParse)
}

func documentReadError(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %v", ErrDocumentRead, path, err), goerrors.CategoryCommand, "document skipped").
		WithTextCode(codeDocumentRead)
}

func assetMissingError(path string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrAssetMissing, path), goerrors.CategoryCommand, "asset not copied").
		WithTextCode(codeAssetMissing)
}

func noPostsError(dir string) error {
	return goerrors.Wrap(fmt.Errorf("%w in %s", ErrNoPosts, dir), goerrors.CategoryCommand, "nothing to generate").
		WithTextCode(codeNoPosts)
}
