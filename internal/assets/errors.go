package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("asset path escapes asset directory")
)
