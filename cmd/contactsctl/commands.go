package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/umalmyha/contacts/internal/client"
)

const (
	defaultAPIURL  = "http://localhost:5000"
	requestTimeout = 10 * time.Second
)

type contactFlags struct {
	firstName string
	lastName  string
	email     string
	phone     string
	company   string
	jobTitle  string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email, must be unique")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone")
	cmd.Flags().StringVar(&f.company, "company", "", "company")
	cmd.Flags().StringVar(&f.jobTitle, "job-title", "", "job title")
}

// update includes only flags explicitly set, so omitted fields keep their values
func (f *contactFlags) update(cmd *cobra.Command) client.UpdateContact {
	var uc client.UpdateContact
	changed := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}

	uc.FirstName = changed("first-name", &f.firstName)
	uc.LastName = changed("last-name", &f.lastName)
	uc.Email = changed("email", &f.email)
	uc.Phone = changed("phone", &f.phone)
	uc.Company = changed("company", &f.company)
	uc.JobTitle = changed("job-title", &f.jobTitle)
	return uc
}

func newRootCmd(out io.Writer) *cobra.Command {
	apiURL := os.Getenv("CONTACTS_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	root := &cobra.Command{
		Use:          "contactsctl",
		Short:        "Manage contacts through contacts API",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&apiURL, "api", apiURL, "contacts API base url (env CONTACTS_API_URL)")

	apiClient := func() *client.Client {
		return client.New(apiURL)
	}

	root.AddCommand(
		newListCmd(apiClient),
		newGetCmd(apiClient),
		newCreateCmd(apiClient),
		newUpdateCmd(apiClient),
		newDeleteCmd(apiClient),
	)
	return root
}

func newListCmd(apiClient func() *client.Client) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long: `List all contacts.

With --search only contacts whose first name, last name or email
contain the query (case-insensitive) are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			contacts, err := apiClient().List(ctx)
			if err != nil {
				return err
			}

			list := client.NewContactList(contacts)
			return printContacts(cmd.OutOrStdout(), list.Filter(search))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by first name, last name or email")
	return cmd
}

func newGetCmd(apiClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show single contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			c, err := apiClient().Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printContact(cmd.OutOrStdout(), c)
		},
	}
}

func newCreateCmd(apiClient func() *client.Client) *cobra.Command {
	var flags contactFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			api := apiClient()
			list, err := fetchList(ctx, api)
			if err != nil {
				return err
			}

			c, err := api.Create(ctx, client.NewContact{
				FirstName: flags.firstName,
				LastName:  flags.lastName,
				Email:     flags.email,
				Phone:     flags.phone,
				Company:   flags.company,
				JobTitle:  flags.jobTitle,
			})
			if err != nil {
				return err
			}

			list.Append(c)
			fmt.Fprintf(cmd.OutOrStdout(), "Contact %s created\n\n", c.ID)
			return printContacts(cmd.OutOrStdout(), list.All())
		},
	}
	flags.register(cmd)
	return cmd
}

func newUpdateCmd(apiClient func() *client.Client) *cobra.Command {
	var flags contactFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update contact, only provided fields are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			api := apiClient()
			list, err := fetchList(ctx, api)
			if err != nil {
				return err
			}

			c, err := api.Update(ctx, args[0], flags.update(cmd))
			if err != nil {
				return err
			}

			list.Replace(c)
			fmt.Fprintf(cmd.OutOrStdout(), "Contact %s updated\n\n", c.ID)
			return printContacts(cmd.OutOrStdout(), list.All())
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCmd(apiClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			api := apiClient()
			list, err := fetchList(ctx, api)
			if err != nil {
				return err
			}

			if err := api.Delete(ctx, args[0]); err != nil {
				return err
			}

			list.Remove(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Contact %s deleted\n\n", args[0])
			return printContacts(cmd.OutOrStdout(), list.All())
		},
	}
}

func fetchList(ctx context.Context, api *client.Client) (*client.ContactList, error) {
	contacts, err := api.List(ctx)
	if err != nil {
		return nil, err
	}
	return client.NewContactList(contacts), nil
}
