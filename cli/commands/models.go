package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect available models",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available models",
		RunE:  a.runModelsList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <model>",
		Short: "Show details for one model",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runModelsGet,
	})

	return cmd
}

func (a *App) runModelsList(cmd *cobra.Command, args []string) error {
	client, err := a.client()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	models, err := client.ListModels(context.Background())
	if err != nil {
		return a.handleChatError(err)
	}

	if a.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}

	for _, m := range models.Data {
		fmt.Fprintf(a.stdout, "%s\n", m.ID)
	}
	return nil
}

func (a *App) runModelsGet(cmd *cobra.Command, args []string) error {
	client, err := a.client()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	model, err := client.RetrieveModel(context.Background(), args[0])
	if err != nil {
		return a.handleChatError(err)
	}

	if a.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model)
	}

	fmt.Fprintf(a.stdout, "%s\n", model.ID)
	fmt.Fprintf(a.stdout, "  owned by: %s\n", model.OwnedBy)
	if model.Root != "" {
		fmt.Fprintf(a.stdout, "  root:     %s\n", model.Root)
	}
	return nil
}
