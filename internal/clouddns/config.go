package clouddns

// Config is used to configure the creation of the Provider.
type Config struct {
	CredentialFile string
	Project        string
	TTL            int64
	DryRun         bool
}
