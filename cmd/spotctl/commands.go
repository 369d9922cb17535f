package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spotapi/internal/service"
)

// serviceOpener connects the configured backends on first use.
type serviceOpener func(ctx context.Context) (service.SpotService, error)

func newRootCmd(open serviceOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "spotctl",
		Short:         "Manage tempat_wisata tourist spots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(open), newAddCmd(open), newDeleteCmd(open))
	return root
}

func newListCmd(open serviceOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every spot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return printSpots(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}
}

func newAddCmd(open serviceOpener) *cobra.Command {
	var name, description, imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a spot, replacing any spot with the same name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := service.SpotInput{Name: name, Description: description}

			if strings.TrimSpace(imagePath) != "" {
				f, err := os.Open(imagePath)
				if err != nil {
					return fmt.Errorf("open image: %w", err)
				}
				defer f.Close()

				in.Image = f
				if st, err := f.Stat(); err == nil {
					in.ImageSize = st.Size()
				}
			}

			// Report form gaps before touching any backend.
			if err := service.ValidateSpotInput(in); err != nil {
				return err
			}

			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			spot, err := svc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "saved %q\n", spot.Name)
			return printSpots(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "spot name (document key)")
	cmd.Flags().StringVar(&description, "description", "", "spot description")
	cmd.Flags().StringVar(&imagePath, "image", "", "path of the image to stage")
	return cmd
}

func newDeleteCmd(open serviceOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a spot and its image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "deleted %q\n", args[0])
			return printSpots(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}
}

// printSpots refetches the whole collection and prints it as a table.
func printSpots(ctx context.Context, w io.Writer, svc service.SpotService) error {
	res, err := svc.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMA\tDESKRIPSI\tGAMBAR")
	for _, s := range res.Items {
		ref := "-"
		if s.ImageRef != nil {
			ref = *s.ImageRef
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Description, ref)
	}
	fmt.Fprintf(tw, "(%d spots)\n", res.Total)
	return tw.Flush()
}
