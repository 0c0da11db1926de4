package command

import (
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/easycar-go/internal/cli/output"
	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/core/session"
)

// EmptyVehiclesMessage is shown instead of an empty table.
const EmptyVehiclesMessage = "No vehicles yet. Add one with `easycar vehicle add PLATE`."

// VehicleCommand returns the vehicle subcommand group.
func VehicleCommand() *cli.Command {
	return &cli.Command{
		Name:    "vehicle",
		Aliases: []string{"vehicles", "v"},
		Usage:   "Manage your vehicles",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List vehicles",
				Action:  vehicleList,
			},
			{
				Name:      "add",
				Usage:     "Register a vehicle",
				ArgsUsage: "PLATE",
				Action:    vehicleAdd,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a vehicle",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "skip confirmation",
					},
				},
				Action: vehicleDelete,
			},
		},
	}
}

// mainRuntime returns the runtime after checking the user is signed in.
func mainRuntime(c *cli.Context) (*Runtime, error) {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return nil, err
	}
	if err := rt.Require(c.Context, session.GraphMain); err != nil {
		return nil, err
	}
	return rt, nil
}

func vehicleList(c *cli.Context) error {
	rt, err := mainRuntime(c)
	if err != nil {
		return err
	}
	return rt.showVehicles(c)
}

func (rt *Runtime) showVehicles(c *cli.Context) error {
	vehicles, err := rt.Conn.Vehicles.List(c.Context)
	if err != nil {
		return rt.signOutIfRejected(c.Context, err)
	}
	if len(vehicles) == 0 && rt.Format == output.FormatTable {
		rt.Printf("%s\n", EmptyVehiclesMessage)
		return nil
	}
	return rt.Render(vehicles)
}

func vehicleAdd(c *cli.Context) error {
	rt, err := mainRuntime(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.New("usage: easycar vehicle add PLATE")
	}

	v, err := rt.Conn.Vehicles.Create(c.Context, c.Args().First())
	if err != nil {
		return rt.signOutIfRejected(c.Context, err)
	}
	fmt.Fprintf(rt.Stderr, "Added %s.\n", v.Plate)
	return rt.showVehicles(c)
}

func vehicleDelete(c *cli.Context) error {
	rt, err := mainRuntime(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.New("usage: easycar vehicle delete ID")
	}
	id := c.Args().First()

	vehicles, err := rt.Conn.Vehicles.List(c.Context)
	if err != nil {
		return rt.signOutIfRejected(c.Context, err)
	}
	idx := slices.IndexFunc(vehicles, func(v domain.Vehicle) bool { return v.ID == id })
	if idx < 0 {
		return fmt.Errorf("no vehicle with id %s", id)
	}
	plate := vehicles[idx].Plate

	if !c.Bool("force") {
		ok, err := output.Confirm(rt.Stdin, rt.Stderr, fmt.Sprintf("Delete vehicle with plate %s?", plate))
		if err != nil {
			return err
		}
		if !ok {
			rt.Printf("Cancelled.\n")
			return nil
		}
	}

	if err := rt.Conn.Vehicles.Delete(c.Context, id); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return fmt.Errorf("no vehicle with id %s", id)
		}
		return rt.signOutIfRejected(c.Context, err)
	}
	fmt.Fprintf(rt.Stderr, "Deleted %s.\n", plate)
	return rt.showVehicles(c)
}
