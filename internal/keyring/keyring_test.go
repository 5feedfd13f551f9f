package keyring

import (
	"errors"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lifetracks/internal/constants"
)

func TestSetGetDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://tracker@localhost:5432/lifetracks?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("expected %q, got %q", connStr, got)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("   "); err == nil {
		t.Error("expected blank connection string to be rejected")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()

	t.Setenv(constants.DBConnectionEnv, "")
	if _, err := ResolveConnectionString(); err == nil || !strings.Contains(err.Error(), constants.DBConnectionEnv) {
		t.Errorf("expected a hint naming %s, got %v", constants.DBConnectionEnv, err)
	}

	if err := SetConnectionString("postgres://from-keyring@localhost/db"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, err := ResolveConnectionString()
	if err != nil || got != "postgres://from-keyring@localhost/db" {
		t.Errorf("expected keyring value, got %q (%v)", got, err)
	}

	t.Setenv(constants.DBConnectionEnv, "postgres://from-env@localhost/db")
	got, err = ResolveConnectionString()
	if err != nil || got != "postgres://from-env@localhost/db" {
		t.Errorf("expected environment to win, got %q (%v)", got, err)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}
}
