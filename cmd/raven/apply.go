package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slm-1056101/raven/internal/wizard"
)

// newApplyCmd drives the public application wizard from flags: the four
// steps advance with per-step validation exactly as on the web, then the
// precheck/signup/submit pipeline runs.
func newApplyCmd() *cobra.Command {
	var (
		propertyID string
		companyID  string
		form       wizard.Form
		idDocPath  string
		fundsPath  string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply for a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			// Best effort: a persisted session prefills the applicant.
			_ = a.store.Rehydrate(cmd.Context())

			properties, err := a.client.PublicProperties(cmd.Context())
			if err != nil {
				return err
			}
			for i := range properties {
				if properties[i].ID == propertyID {
					a.store.SetPublicProperty(&properties[i])
					break
				}
			}
			if companyID != "" {
				a.store.SetPublicCompanyID(companyID)
			}

			flow := wizard.NewPublicFlow(a.store, a.client, a.validate, cliNotifier{})

			target := flow.Form()
			merge(target, &form)
			if idDocPath != "" {
				doc, err := readAttachment(idDocPath)
				if err != nil {
					return err
				}
				target.IDDocument = doc
			}
			if fundsPath != "" {
				doc, err := readAttachment(fundsPath)
				if err != nil {
					return err
				}
				target.ProofOfFunds = doc
			}

			for flow.Step() < wizard.StepDocuments {
				if err := flow.Next(); err != nil {
					return fmt.Errorf("step %d: %w", flow.Step(), err)
				}
			}

			return flow.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "property id")
	cmd.Flags().StringVar(&companyID, "company", "", "company id (defaults to the property's owner)")
	cmd.Flags().StringVar(&form.FullName, "name", "", "first name")
	cmd.Flags().StringVar(&form.Surname, "surname", "", "surname")
	cmd.Flags().StringVar(&form.Username, "email", "", "email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (new accounts only)")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&form.IntendedUse, "intended-use", "", "intended use of the property")
	cmd.Flags().Float64Var(&form.OfferAmount, "offer", 0, "offer amount")
	cmd.Flags().StringVar(&form.FinancingMethod, "financing", "", "financing method")
	cmd.Flags().StringVar(&form.StartDate, "start-date", "", "rental start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.EndDate, "end-date", "", "rental end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.PickupTime, "pickup-time", "", "vehicle pickup time")
	cmd.Flags().StringVar(&idDocPath, "id-document", "", "path to the ID document")
	cmd.Flags().StringVar(&fundsPath, "proof-of-funds", "", "path to the proof of funds")
	_ = cmd.MarkFlagRequired("property")
	return cmd
}

// merge copies flag-provided fields over the prefilled form without
// clobbering prefills with empty flags.
func merge(dst, src *wizard.Form) {
	if src.FullName != "" {
		dst.FullName = src.FullName
	}
	if src.Surname != "" {
		dst.Surname = src.Surname
	}
	if src.Username != "" {
		dst.Username = src.Username
		dst.Email = src.Username
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
	if src.Address != "" {
		dst.Address = src.Address
	}
	if src.IntendedUse != "" {
		dst.IntendedUse = src.IntendedUse
	}
	if src.OfferAmount != 0 {
		dst.OfferAmount = src.OfferAmount
	}
	if src.FinancingMethod != "" {
		dst.FinancingMethod = src.FinancingMethod
	}
	if src.StartDate != "" {
		dst.StartDate = src.StartDate
	}
	if src.EndDate != "" {
		dst.EndDate = src.EndDate
	}
	if src.PickupTime != "" {
		dst.PickupTime = src.PickupTime
	}
}

func readAttachment(path string) (*wizard.Attachment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	return &wizard.Attachment{Filename: filepath.Base(path), Content: content}, nil
}
