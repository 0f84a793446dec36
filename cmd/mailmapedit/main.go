// mailmapedit edits the shared username to notification-address map.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hpcfactory/condor-api/mailmap"
)

var path string

func main() {
	root := &cobra.Command{
		Use:          "mailmapedit",
		Short:        "Edit the username to notification-address map",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&path, "file", "f", mailmap.DefaultPath, "mail map file")
	root.AddCommand(listCmd(), getCmd(), setCmd(), delCmd(), setDefaultCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadOrNew tolerates a missing file so the first "set" can create the map.
func loadOrNew() (*mailmap.Map, error) {
	m, err := mailmap.Load(path)
	if os.IsNotExist(err) {
		return &mailmap.Map{Users: map[string]string{}}, nil
	}
	return m, err
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mailmap.Load(path)
			if err != nil {
				return err
			}
			users := make([]string, 0, len(m.Users))
			for u := range m.Users {
				users = append(users, u)
			}
			sort.Strings(users)
			for _, u := range users {
				fmt.Printf("%s:\t%s\n", u, m.Users[u])
			}
			if m.Default != "" {
				fmt.Printf("(default):\t%s\n", m.Default)
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Print the address for a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mailmap.Load(path)
			if err != nil {
				return err
			}
			addr, ok := m.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%s is not in the map and no default entry is set", args[0])
			}
			fmt.Println(addr)
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <username> <address>",
		Short: "Add or replace an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadOrNew()
			if err != nil {
				return err
			}
			m.Set(args[0], args[1])
			return m.Save(path)
		},
	}
}

func delCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <username>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mailmap.Load(path)
			if err != nil {
				return err
			}
			m.Delete(args[0])
			return m.Save(path)
		},
	}
}

func setDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <address>",
		Short: "Set the address used for unknown usernames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadOrNew()
			if err != nil {
				return err
			}
			m.Default = args[0]
			return m.Save(path)
		},
	}
}
