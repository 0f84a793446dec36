package api

// Config is the service configuration, loaded from the YAML file named by
// CONFIG_PATH.
type Config struct {
	// ListenAddress for the HTTP server, e.g. ":8080".
	ListenAddress string `yaml:"listen_address"`
	// Server is the scheduler host submissions are sent to.
	Server string `yaml:"server"`
	// User is the identity used for submissions.
	User string `yaml:"user"`
	// Universe is the default execution environment for submitted jobs.
	Universe string `yaml:"universe"`
	// MailMap overrides the notification map location.
	MailMap string `yaml:"mail_map"`
	// SaveDir is where saved submission descriptions are written.
	SaveDir string `yaml:"save_dir"`
}
