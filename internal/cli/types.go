package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/registry"
)

// typesCommand creates the types command group for working with the
// node-type catalog.
func (c *CLI) typesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Inspect the node-type catalog",
	}

	cmd.AddCommand(c.typesListCommand())
	cmd.AddCommand(c.typesSearchCommand())
	cmd.AddCommand(c.typesBrowseCommand())

	return cmd
}

// typesListCommand creates the "types list" subcommand.
func (c *CLI) typesListCommand() *cobra.Command {
	var catalog, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered node types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry(catalog)
			if err != nil {
				return err
			}
			defs := reg.All()
			if category != "" {
				defs = reg.ByCategory(category)
			}
			if len(defs) == 0 {
				printInfo("No node types registered")
				return nil
			}
			printDefinitions(defs)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "extra node-type catalog file (TOML)")
	cmd.Flags().StringVar(&category, "category", "", "only list types in this category")
	return cmd
}

// typesSearchCommand creates the "types search" subcommand.
func (c *CLI) typesSearchCommand() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search node types by name, label, or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry(catalog)
			if err != nil {
				return err
			}
			defs := reg.Search(args[0])
			if len(defs) == 0 {
				printInfo("No node types match %q", args[0])
				return nil
			}
			printDefinitions(defs)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "extra node-type catalog file (TOML)")
	return cmd
}

// typesBrowseCommand creates the "types browse" subcommand, an
// interactive catalog browser.
func (c *CLI) typesBrowseCommand() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the node-type catalog interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry(catalog)
			if err != nil {
				return err
			}
			model := NewTypeListModel(reg.All())
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(TypeListModel); ok && m.Selected != nil {
				printNewline()
				printDefinition(*m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "extra node-type catalog file (TOML)")
	return cmd
}

// printDefinitions prints a compact table of node-type definitions.
func printDefinitions(defs []registry.Definition) {
	for _, def := range defs {
		fmt.Printf("  %s  %s %s\n",
			StyleValue.Render(fmt.Sprintf("%-12s", def.Type)),
			def.Label,
			StyleDim.Render("("+def.Category+")"))
	}
	printNewline()
	printDetail("%d types", len(defs))
}

// printDefinition prints the full detail view of one definition.
func printDefinition(def registry.Definition) {
	fmt.Println(StyleTitle.Render(def.Label))
	printKeyValue("Type", def.Type)
	printKeyValue("Category", def.Category)
	if def.Description != "" {
		printKeyValue("Description", def.Description)
	}
	if len(def.Tags) > 0 {
		printKeyValue("Tags", strings.Join(def.Tags, ", "))
	}
	ports := fmt.Sprintf("in=%v out=%v", def.Ports.Input, def.Ports.Output)
	if def.Ports.MultipleOutputs {
		ports += " (" + strings.Join(def.Ports.OutputLabels, "/") + ")"
	}
	printKeyValue("Ports", ports)
	for _, prop := range def.Properties {
		required := ""
		if prop.Required {
			required = StyleWarning.Render(" required")
		}
		printDetail("%s (%s)%s", prop.Key, prop.Type, required)
	}
}
