package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/umalmyha/contacts/internal/model"
)

func printContacts(out io.Writer, contacts []model.Contact) error {
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(out, "No contacts found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tPHONE\tCOMPANY\tJOB TITLE")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Company, c.JobTitle)
	}
	return w.Flush()
}

func printContact(out io.Writer, c model.Contact) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", c.ID)
	fmt.Fprintf(w, "First name:\t%s\n", c.FirstName)
	fmt.Fprintf(w, "Last name:\t%s\n", c.LastName)
	fmt.Fprintf(w, "Email:\t%s\n", c.Email)
	fmt.Fprintf(w, "Phone:\t%s\n", c.Phone)
	fmt.Fprintf(w, "Company:\t%s\n", c.Company)
	fmt.Fprintf(w, "Job title:\t%s\n", c.JobTitle)
	return w.Flush()
}
