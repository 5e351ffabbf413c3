package main

import (
	"fmt"

	"github.com/setanarut/huescore/pipeline"
	"github.com/setanarut/huescore/upload"
	"github.com/setanarut/huescore/utils"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(g *globals) *cobra.Command {
	var (
		doUpload bool
		stripOut string
	)
	cmd := &cobra.Command{
		Use:   "analyze <image_id> <image_url|path>",
		Short: "Analyze one image and optionally upload the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			imageID, ref := args[0], args[1]
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Analyzing %s...\n", imageID)
			scores, err := pipeline.New(g.cfg).Run(ctx, ref)
			if err != nil {
				g.logger.Error("analysis failed", "image_id", imageID, "ref", ref, "err", err)
				return err
			}

			fmt.Fprintln(out, "\nColor analysis:")
			if err := g.reportWriter(out).Scores(scores); err != nil {
				return err
			}

			if stripOut != "" {
				if err := utils.SaveDistribution(scores, 0, 0, stripOut); err != nil {
					return fmt.Errorf("save distribution: %w", err)
				}
			}

			if !doUpload {
				return nil
			}
			client, err := upload.NewClient(ctx, g.cfg.Upload.BaseURL, g.cfg.Upload.Token, g.cfg.Upload.Timeout.Duration)
			if err != nil {
				return err
			}
			resp, err := client.Upload(ctx, upload.Payload{ImageID: imageID, ImageURL: ref, Colors: scores})
			if err != nil {
				g.logger.Error("upload failed", "image_id", imageID, "err", err)
				return err
			}
			g.logger.Info("uploaded", "image_id", resp.ImageID, "message", resp.Message)
			return nil
		},
	}
	cmd.Flags().BoolVar(&doUpload, "upload", false, "post the result to the configured collector")
	cmd.Flags().StringVar(&stripOut, "strip", "", "also write the distribution as a PNG strip")
	return cmd
}
