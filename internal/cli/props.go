package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/field"
	bpio "github.com/matzehuels/bpjson/pkg/io"
	"github.com/matzehuels/bpjson/pkg/object"
)

// propsCommand groups the object serializer commands. They operate on a
// YAML mapping treated as a runtime-declared object: scalars are fields,
// nested mappings are object references.
func (c *CLI) propsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props",
		Short: "Read and write object properties as JSON",
	}

	cmd.AddCommand(c.propsDumpCommand())
	cmd.AddCommand(c.propsGetCommand())
	cmd.AddCommand(c.propsSetCommand())
	cmd.AddCommand(c.propsLoadCommand())

	return cmd
}

func (c *CLI) serializer(pretty bool) *object.Serializer {
	opts := []object.Option{
		object.WithLogger(c.Logger),
		object.WithMaxDepth(c.settings().MaxDepth),
	}
	if pretty {
		opts = append(opts, object.WithIndent("  "))
	}
	return object.New(field.DynamicAccessor{}, opts...)
}

func loadProps(path string) (*field.Dynamic, error) {
	data, err := bpio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return field.ParseDynamicYAML(data)
}

func saveProps(path string, d *field.Dynamic) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode object YAML")
	}
	return bpio.WriteFile(path, data)
}

func (c *CLI) propsDumpCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:     "dump <object.yaml>",
		Short:   "Serialize every field of an object",
		Example: `  bpjson props dump examples/door_props.yaml --pretty`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadProps(args[0])
			if err != nil {
				return err
			}
			text, err := c.serializer(pretty).Serialize(d)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func (c *CLI) propsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get <object.yaml> <field>",
		Short:   "Serialize one field as a single-entry JSON object",
		Example: `  bpjson props get examples/door_props.yaml OpenSpeed`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFieldName(args[1]); err != nil {
				return err
			}
			d, err := loadProps(args[0])
			if err != nil {
				return err
			}
			text, err := c.serializer(false).FieldJSON(d, args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func (c *CLI) propsSetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set <object.yaml> <field> <value>",
		Short: "Write one field from a JSON value",
		Long: `Write one field from a JSON value and save the object.

The value is parsed as JSON; anything that is not valid JSON is taken as a
string. Values that do not fit the field's kind leave it unchanged.`,
		Example: `  bpjson props set examples/door_props.yaml OpenSpeed 2.5
  bpjson props set examples/door_props.yaml Label "Front door"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, name, value := args[0], args[1], args[2]
			if err := errors.ValidateFieldName(name); err != nil {
				return err
			}
			d, err := loadProps(path)
			if err != nil {
				return err
			}

			if !json.Valid([]byte(value)) {
				quoted, _ := json.Marshal(value)
				value = string(quoted)
			}
			key, _ := json.Marshal(name)
			doc := "{" + string(key) + ":" + value + "}"

			s := c.serializer(false)
			if err := s.SetFieldFromJSON(d, name, doc); err != nil {
				return err
			}
			if output == "" {
				output = path
			}
			if err := saveProps(output, d); err != nil {
				return err
			}

			text, err := s.FieldJSON(d, name)
			if err != nil {
				return err
			}
			printSuccess("Updated %s", name)
			printDetail("%s", text)
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of the input")
	return cmd
}

func (c *CLI) propsLoadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load <object.yaml> <document.json>",
		Short: "Apply a JSON document to an object",
		Long: `Apply every property of a JSON object document to the same-named fields
and save the object. Unknown properties and kind mismatches are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadProps(args[0])
			if err != nil {
				return err
			}
			doc, err := bpio.ReadFile(args[1])
			if err != nil {
				return err
			}
			if err := c.serializer(false).Deserialize(string(doc), d); err != nil {
				if !errors.IsNoop(err) {
					return err
				}
				c.Logger.Debug("nothing to apply", "document", args[1], "err", err)
			}
			if output == "" {
				output = args[0]
			}
			if err := saveProps(output, d); err != nil {
				return err
			}
			printSuccess("Applied %s", args[1])
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of the input")
	return cmd
}
