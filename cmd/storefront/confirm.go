package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/andreasstove999/storefront-client-go/internal/checkout"
)

// stdioConfirmer shows the order summary and waits for the buyer's decision
// on the terminal. It blocks until a line is read; checkout has no timeout
// at this step.
type stdioConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newStdioConfirmer(in io.Reader, out io.Writer) *stdioConfirmer {
	return &stdioConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *stdioConfirmer) Confirm(ctx context.Context, s *checkout.Session) (bool, error) {
	fmt.Fprintln(c.out, "Order confirmation")
	fmt.Fprintf(c.out, "  Recipient: %s\n", s.Profile.FullName)
	fmt.Fprintf(c.out, "  Phone:     %s\n", s.Profile.Phone)
	fmt.Fprintf(c.out, "  Deliver to: %s\n", s.Profile.AddressLine)
	fmt.Fprintln(c.out, "  Payment:   COD")
	fmt.Fprintln(c.out)
	for _, it := range s.Cart.Items {
		fmt.Fprintf(c.out, "  %-40s x%-3d ₫%s\n", it.Name, it.Quantity, it.Subtotal())
	}
	fmt.Fprintf(c.out, "  Total: ₫%s\n", s.Cart.Total())
	fmt.Fprint(c.out, "Confirm order? [y/N] ")

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
