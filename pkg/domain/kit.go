package domain

// KitLayer is the content an optional kit contributes to its layer.
// A passthrough layer has empty content; Reason explains why, if known.
type KitLayer struct {
	Kit         string
	Content     string
	Passthrough bool
	Reason      error
}

// PassthroughLayer builds the empty stub used when a kit is unavailable.
func PassthroughLayer(kit string, reason error) KitLayer {
	return KitLayer{Kit: kit, Passthrough: true, Reason: reason}
}
