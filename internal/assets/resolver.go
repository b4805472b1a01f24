package assets

import "errors"

// AssetResolver looks assets up in a custom directory first and in the
// embedded set second. Only a miss falls through: invalid names and read
// errors from the custom directory are returned as is.
type AssetResolver struct {
	chain []AssetLoader
}

var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver builds a resolver over customDir, or over the embedded
// assets alone when customDir is empty.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customDir != "" {
		custom, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, custom)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle resolves the stylesheet called name.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate resolves the HTML template called name.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom directory is consulted.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}
