package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"flightdesk/internal/config"

	"github.com/spf13/cobra"
)

const starterConfig = `# flightdesk configuration

[llm]
model = "gpt-4o-mini"
# base_url = "https://api.openai.com/v1"

[trace]
# OTLP endpoint of your tracking backend, e.g. a local Phoenix instance.
# endpoint = "localhost:6006"
url_path = "/v1/traces"

[gateway]
addr = ":8686"

[tools]
# brave_api_key = ""
`

var Cmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a starter configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if _, err := os.Stat(path); err == nil {
			fmt.Println("config already exists at", path)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return err
		}

		fmt.Println("wrote", path)
		fmt.Println("set OPENAI_API_KEY in your environment or a .env file")
		return nil
	},
}
