package scaffoldcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-katas/pkg/interfaces"
)

const scaffoldKataMessageType = "katas.scaffold.create_kata"

// ScaffoldCallback receives the creation report for a scaffolded kata.
type ScaffoldCallback func(*interfaces.ScaffoldResult)

// ScaffoldKataCommand creates a new kata directory skeleton inside the
// corpus, seeded with a main document carrying the provided title.
type ScaffoldKataCommand struct {
	// Title is the human title seeded into the main document heading.
	Title string `json:"title"`
	// ID overrides the identifier derived from Title. Must be a bare
	// directory name, not a path.
	ID string `json:"id,omitempty"`
	// Publish appends the new kata to the published index.
	Publish bool `json:"publish,omitempty"`
	// ResultCallback is invoked with the creation report on success.
	ResultCallback ScaffoldCallback `json:"-"`
}

// Type implements command.Message.
func (ScaffoldKataCommand) Type() string { return scaffoldKataMessageType }

// Validate ensures the title is present and any explicit ID stays inside the
// corpus directory.
func (cmd ScaffoldKataCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("katas.scaffold.create_kata.title_required", "title is required")
			}
			return nil
		})),
		validation.Field(&cmd.ID, validation.By(func(value any) error {
			id := value.(string)
			if id == "" {
				return nil
			}
			if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
				return validation.NewError("katas.scaffold.create_kata.id_invalid", "id must be a bare directory name")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}
