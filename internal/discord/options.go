package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TrainerBot_Go/internal/domain"
)

// optionMap indexes interaction options by name
type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

// subcommandOptions returns the invoked subcommand and its options
func subcommandOptions(i *discordgo.InteractionCreate) (string, optionMap) {
	opts := make(optionMap)
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", opts
	}

	sub := data.Options[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		for _, opt := range data.Options {
			opts[opt.Name] = opt
		}
		return "", opts
	}
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}
	return sub.Name, opts
}

// focusedOption returns the option the user is typing into
func focusedOption(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Focused {
			return opt
		}
		if f := focusedOption(opt.Options); f != nil {
			return f
		}
	}
	return nil
}

func (o optionMap) has(name string) bool {
	opt, ok := o[name]
	return ok && opt != nil
}

// str reads a string option, empty when absent
func (o optionMap) str(name string) string {
	if !o.has(name) {
		return ""
	}
	return o[name].StringValue()
}

// id parses a numeric option that autocomplete filled with an ID
func (o optionMap) id(name string) (int64, error) {
	if !o.has(name) {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, name)
	}
	return parseID(o[name].StringValue())
}

// amount reads an integer option
func (o optionMap) amount(name string) (int, error) {
	if !o.has(name) {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, name)
	}
	return int(o[name].IntValue()), nil
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an id", domain.ErrInvalidInput, value)
	}
	return id, nil
}

// Level target values are "trainer:<id>" or "monster:<id>:<owner trainer id>"
func trainerTarget(id int64) string {
	return fmt.Sprintf("%s:%d", domain.EntityTrainer, id)
}

func monsterTarget(m domain.Monster) string {
	return fmt.Sprintf("%s:%d:%d", domain.EntityMonster, m.ID, m.TrainerID)
}

// parseTarget decodes a level target. A bare number is read as a trainer.
func parseTarget(value string) (domain.EntityType, int64, int64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")

	switch {
	case len(parts) == 1:
		id, err := parseID(parts[0])
		return domain.EntityTrainer, id, 0, err

	case len(parts) == 2 && parts[0] == string(domain.EntityTrainer):
		id, err := parseID(parts[1])
		return domain.EntityTrainer, id, 0, err

	case len(parts) == 3 && parts[0] == string(domain.EntityMonster):
		id, err := parseID(parts[1])
		if err != nil {
			return "", 0, 0, err
		}
		owner, err := parseID(parts[2])
		return domain.EntityMonster, id, owner, err

	default:
		return "", 0, 0, fmt.Errorf("%w: unrecognized target %q", domain.ErrInvalidInput, value)
	}
}
