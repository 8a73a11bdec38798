// Command x509examine reads PEM- or DER-encoded certificates from disk
// and renders a JSON security analysis report (spec §6; outside the core
// per spec.md's Non-goals — a thin rendering/transport shell around the
// analysis package).
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/x509examine/x509examine/analysis"
	"github.com/x509examine/x509examine/internal/purpose"
	"github.com/x509examine/x509examine/internal/verify"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		fastRSA        bool
		includeRawData bool
		verbose        bool
		entityName     string
		purposeFlags   []string
	)

	cmd := &cobra.Command{
		Use:   "x509examine [certificate-file]",
		Short: "Analyze an X.509 certificate's security properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("x509examine: %w", err)
			}

			purposes, err := parsePurposes(purposeFlags)
			if err != nil {
				return err
			}

			if verbose {
				stdr.SetVerbosity(1) // analyzer trace lines are emitted at V(1)
			}
			logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

			engine := analysis.New(analysis.Config{
				FastRSA:        fastRSA,
				IncludeRawData: includeRawData,
				Purposes:       purposes,
				EntityName:     entityName,
				Verifier:       verify.StdlibVerifier{},
				Logger:         logger,
			})

			reports, err := engine.Analyze(data)
			if err != nil {
				return fmt.Errorf("x509examine: %w", err)
			}

			for i := range reports {
				for j := range reports {
					if i == j {
						continue
					}
					engine.AttachCARelation(&reports[i], &reports[j])
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(renderReports(reports))
		},
	}

	cmd.Flags().BoolVar(&fastRSA, "fast-rsa", false, "skip expensive RSA primality/trial-division checks")
	cmd.Flags().BoolVar(&includeRawData, "include-raw-data", false, "accepted for compatibility; no raw byte-level parameters are added to the report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "emit analyzer trace logging to stderr")
	cmd.Flags().StringVar(&entityName, "entity-name", "", "target hostname for tls-server hostname matching")
	cmd.Flags().StringSliceVar(&purposeFlags, "purpose", nil, "purposes to check: tls-server, tls-client, ca")

	return cmd
}

func parsePurposes(flags []string) ([]purpose.Purpose, error) {
	var out []purpose.Purpose
	for _, f := range flags {
		switch f {
		case "tls-server":
			out = append(out, purpose.TLSServer)
		case "tls-client":
			out = append(out, purpose.TLSClient)
		case "ca":
			out = append(out, purpose.CA)
		default:
			return nil, fmt.Errorf("x509examine: unrecognized --purpose %q", f)
		}
	}
	return out, nil
}
