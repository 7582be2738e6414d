package pgm

import (
	"errors"
	"fmt"
	"time"
)

// ObjectCategory classifies a replaceable schema artifact by the folder it
// lives in and the tracking table that gates its re-application.
type ObjectCategory int

const (
	CategoryFunction ObjectCategory = iota
	CategoryTrigger
	CategoryView
)

// String returns the singular lowercase name of the category.
func (c ObjectCategory) String() string {
	switch c {
	case CategoryFunction:
		return "function"
	case CategoryTrigger:
		return "trigger"
	case CategoryView:
		return "view"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Dir returns the project subdirectory holding artifacts of this category.
func (c ObjectCategory) Dir() string {
	switch c {
	case CategoryFunction:
		return "functions"
	case CategoryTrigger:
		return "triggers"
	case CategoryView:
		return "views"
	default:
		return ""
	}
}

// Table returns the tracking table recording applied hashes for this category.
func (c ObjectCategory) Table() string {
	switch c {
	case CategoryFunction:
		return FunctionTable
	case CategoryTrigger:
		return TriggerTable
	case CategoryView:
		return ViewTable
	}
	return ""
}

// Categories lists all object categories in their canonical order.
func Categories() []ObjectCategory {
	return []ObjectCategory{CategoryFunction, CategoryTrigger, CategoryView}
}

// SQLObject is one named, hash-gated schema artifact: a function, trigger
// function, or view. Name is the file stem and is unique within the category
// folder. Hash is the hex digest of the raw file bytes.
type SQLObject struct {
	Category ObjectCategory
	Name     string
	Body     string
	Hash     string
}

// MigrationFile is one append-only migration. The ledger gates re-application
// by name only; Body changes after application have no effect. Bootstrap marks
// the distinguished baseline migration that always applies first.
type MigrationFile struct {
	// Name is the file stem ("00001"); the ledger key.
	Name string

	// Filename is the basename including extension ("00001.sql").
	Filename string

	Body      string
	Bootstrap bool
}

// ApplyConfig carries everything the apply workflow needs.
type ApplyConfig struct {
	// ProjectDir is the root directory pgm manages (contains migrations/,
	// functions/, triggers/, views/, seeds/).
	ProjectDir string

	// DryRun prints the compiled script to stdout instead of executing it.
	// Dry-run output keeps comment lines for human review.
	DryRun bool

	// Fake compiles the bookkeeping-only variant that marks every artifact
	// as applied without running any body.
	Fake bool

	// ConnectionString is the resolved PostgreSQL connection string for the
	// target database. Empty is allowed for DryRun.
	ConnectionString string

	// Timeout bounds the whole apply invocation.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Azure Entra ID credentials (used when AuthMethod is AuthMethodAzureEntraID).
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GoogleInstance string
}

// Validate checks if the ApplyConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ApplyConfig) Validate() error {
	var errs []error

	if c.ProjectDir == "" {
		errs = append(errs, fmt.Errorf("ProjectDir is required: %w", ErrInvalidConfig))
	}

	if !c.DryRun && c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required unless DryRun is set: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is
	// AuthMethodAzureEntraID). If all three are provided, Service Principal
	// authentication is used; otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is the region hosting the RDS instance (AuthMethodAWSIAM).
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name (AuthMethodGoogleIAM).
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
