package commands

import (
	"errors"

	"starmap/internal/pkg/guard"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand is one webhook delivery: the raw body exactly as
// received and the signature header that came with it. The body is not
// parsed here; authentication must see the original bytes.
//
// Example:
//
//	body, _ := io.ReadAll(req.Body)
//	cmd := commands.NewProcessOrderCommand(body, req.Header.Get(services.SignatureHeader))
//	result, err := handler.Handle(ctx, cmd)
type ProcessOrderCommand struct { //nolint:recvcheck //using for validation
	body      []byte
	signature string

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand wraps a delivery. Any body and signature are
// accepted; rejecting them is the pipeline's job.
func NewProcessOrderCommand(body []byte, signature string) ProcessOrderCommand {
	return ProcessOrderCommand{
		body:      body,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// Body returns the raw request body.
func (c ProcessOrderCommand) Body() []byte {
	return c.body
}

// Signature returns the signature header value.
func (c ProcessOrderCommand) Signature() string {
	return c.signature
}
