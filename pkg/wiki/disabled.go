package wiki

import "context"

// Disabled is a [Catalog] that knows no pages.
type Disabled struct{}

func (Disabled) Initialize(context.Context) error { return nil }

func (Disabled) Page(context.Context, PageRef) (*Page, error) { return nil, nil }

func (Disabled) Labels(context.Context, PageRef) ([]string, error) { return nil, nil }

func (Disabled) Nearest(context.Context, string) (PageRef, bool, error) {
	return PageRef{}, false, nil
}

// ExpandLink returns no target, so short links normalize to nothing.
func (Disabled) ExpandLink(context.Context, string) (string, error) { return "", nil }

var _ Catalog = Disabled{}
