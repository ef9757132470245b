package domain

// AlertResult is the outcome of one expiration scan.
type AlertResult struct {
	TargetDate string
	Products   []Product
	EmailID    string
}

// Sent reports whether the scan matched anything and an email went out.
func (r AlertResult) Sent() bool {
	return len(r.Products) > 0
}
