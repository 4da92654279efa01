// Package cli provides thin CLI adapters that translate between CLI
// concerns and application services. Adapters handle output formatting
// but delegate all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/tpflow/internal/ports/primary"
)

// ClientAdapter is a thin adapter that translates CLI operations to
// ClientService calls. It depends only on the ClientService interface,
// enabling easy testing with mocks.
type ClientAdapter struct {
	service primary.ClientService
	out     io.Writer
}

// NewClientAdapter creates a new ClientAdapter with the given service.
func NewClientAdapter(service primary.ClientService, out io.Writer) *ClientAdapter {
	return &ClientAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new client.
func (a *ClientAdapter) Create(ctx context.Context, name, industry, country string) error {
	client, err := a.service.CreateClient(ctx, primary.CreateClientRequest{
		Name:     name,
		Industry: industry,
		Country:  country,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created client %s: %s\n", client.ID, client.Name)
	return nil
}

// List lists clients with an optional status filter.
func (a *ClientAdapter) List(ctx context.Context, status string) error {
	clients, err := a.service.ListClients(ctx, primary.ClientFilters{
		Status: status,
	})
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-10s %-20s %s\n", "ID", "STATUS", "COUNTRY", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, c := range clients {
		fmt.Fprintf(a.out, "%-38s %-10s %-20s %s\n", c.ID, c.Status, c.Country, c.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single client.
func (a *ClientAdapter) Show(ctx context.Context, clientID string) (*primary.Client, error) {
	client, err := a.service.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	fmt.Fprintf(a.out, "\nClient:  %s\n", client.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", client.Name)
	fmt.Fprintf(a.out, "Status:  %s\n", client.Status)
	if client.Industry != "" {
		fmt.Fprintf(a.out, "Industry: %s\n", client.Industry)
	}
	if client.Country != "" {
		fmt.Fprintf(a.out, "Country: %s\n", client.Country)
	}
	if client.ContactName != "" {
		fmt.Fprintf(a.out, "Contact: %s", client.ContactName)
		if client.ContactEmail != "" {
			fmt.Fprintf(a.out, " <%s>", client.ContactEmail)
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintf(a.out, "Created: %s\n", client.CreatedAt.Format("2006-01-02"))
	fmt.Fprintln(a.out)

	return client, nil
}

// Archive marks a client archived.
func (a *ClientAdapter) Archive(ctx context.Context, clientID string) error {
	client, err := a.service.ArchiveClient(ctx, clientID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Archived client %s: %s\n", client.ID, client.Name)
	return nil
}
