package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/keyring"
	"github.com/julianstephens/lifetracks/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    *KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get    *KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete *KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status *KeyringStatusCmd `cmd:"" default:"1" help:"Check keyring availability."`
}

// KeyringSetCmd stores database connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	pp := ctx.Out()
	if !strings.HasPrefix(cmd.ConnectionString, "postgres://") &&
		!strings.HasPrefix(cmd.ConnectionString, "postgresql://") &&
		!strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so an embedded password is allowed here
		pp.Warning("Connection string contains embedded credentials.")
		fmt.Fprintln(pp.Out, "   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	pp.Success("Connection string stored successfully in OS keyring")
	fmt.Fprintf(pp.Out, "  Use --store postgres to connect with it\n")
	return nil
}

// KeyringGetCmd retrieves database connection credentials from the OS keyring
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no connection string found in keyring. Use '%s keyring set' to store one", constants.AppName)
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	out := ctx.Out().Out
	fmt.Fprintln(out, "Connection string retrieved from keyring:")
	fmt.Fprintln(out, maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes database connection credentials from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	ctx.Out().Success("Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	pp := ctx.Out()
	if !keyring.IsAvailable() {
		pp.Failure("OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}

	pp.Success("OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		pp.Success("Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(pp.Out, "ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if scheme, rest, ok := strings.Cut(connStr, "://"); ok {
		// Passwords may contain '@', so the last one ends the user info
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return connStr
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return connStr
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
