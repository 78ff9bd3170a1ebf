package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/guillermoBallester/foodbank/internal/adapter/auth"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
)

type Command struct {
	Secret  string        `help:"HMAC secret used to sign the token." env:"JWT_SECRET" required:""`
	Issuer  string        `help:"Issuer claim; must match the server's JWT_ISSUER when set." env:"JWT_ISSUER"`
	Subject string        `help:"Caller id placed in the sub claim." name:"id" short:"i" required:""`
	Role    string        `help:"Caller role." short:"r" default:"${default_role}"`
	TTL     time.Duration `help:"Token lifetime." name:"ttl" default:"24h"`
}

func (c *Command) Run() error {
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", c.TTL)
	}
	token, err := auth.IssueToken(c.Secret, c.Issuer, c.Subject, c.Role, c.TTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("foodbank-token"),
		kong.Description("Issue a signed bearer token for the food request API."),
		kong.Vars{"default_role": domain.RoleNGO},
	)
	ctx.FatalIfErrorf(ctx.Run())
}
