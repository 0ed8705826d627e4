package grifts

import (
	"encoding/json"
	"fmt"

	"github.com/gobuffalo/grift/grift"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/models"
)

var _ = grift.Namespace("inspection", func() {
	_ = grift.Desc("blank", "print a blank inspection for the given body type (default sedan)")
	_ = grift.Add("blank", func(c *grift.Context) error {
		vt := api.VehicleTypeSedan
		if len(c.Args) > 0 {
			vt = api.VehicleType(c.Args[0])
		}
		if !vt.IsValid() {
			return fmt.Errorf("unknown body type %q, expected one of %v", vt, api.VehicleTypes)
		}

		b, err := json.MarshalIndent(models.NewInspection(vt), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	})
})
