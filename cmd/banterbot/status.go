package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/wickhamj/banterbot/pkg/constants"
)

var statusPort int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show music service login status",
	Long:  "Query the running banterbot instance for its music service login status",
	Run: func(cmd *cobra.Command, args []string) {
		client := &http.Client{Timeout: constants.DefaultHTTPTimeout}
		resp, err := client.Get(fmt.Sprintf("http://localhost:%d/status", statusPort))
		if err != nil {
			fmt.Printf("banterbot is not reachable on port %d: %v\n", statusPort, err)
			return
		}
		defer resp.Body.Close()

		var status struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			User    string `json:"user,omitempty"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			fmt.Printf("failed to decode status response: %v\n", err)
			return
		}

		fmt.Println("banterbot status:")
		fmt.Printf("  Music service: %s\n", status.Status)
		if status.User != "" {
			fmt.Printf("  Logged in as:  %s\n", status.User)
		}
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusPort, "port", constants.DefaultAPIPort, "API server port of the running instance")
}
