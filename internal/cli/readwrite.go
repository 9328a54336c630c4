// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	readDevice     string
	readAttribute  string
	writeDevice    string
	writeAttribute string
	writeValue     string
)

var readCmd = &cobra.Command{
	Use:   "read -D device -A attribute",
	Short: "Read one attribute of one device",
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := openDevice(cmd.Context(), readDevice)
		if err != nil {
			return err
		}
		val, err := dev.ReadAttribute(readAttribute)
		if err != nil {
			return fmt.Errorf("read %s/%s: %w", readDevice, readAttribute, err)
		}
		fmt.Printf("%-40s %v\n", readDevice+"/"+readAttribute, val.Value)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write -D device -A attribute -W value",
	Short: "Write one attribute of one device",
	Long: `Write one attribute of one device.

The value is parsed as JSON when possible, so numbers, booleans and
arrays are written with their native type; anything else is written as
a string.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := openDevice(cmd.Context(), writeDevice)
		if err != nil {
			return err
		}
		var value any = writeValue
		var parsed any
		if err := json.Unmarshal([]byte(writeValue), &parsed); err == nil {
			value = parsed
		}
		if err := dev.WriteAttribute(writeAttribute, value); err != nil {
			return fmt.Errorf("write %s/%s: %w", writeDevice, writeAttribute, err)
		}
		appLog.Info().Str("device", writeDevice).Str("attribute", writeAttribute).Msg("Wrote attribute")
		return nil
	},
}

func init() {
	readCmd.Flags().StringVarP(&readDevice, "device", "D", "", "Device name")
	readCmd.Flags().StringVarP(&readAttribute, "attribute", "A", "", "Attribute name")
	readCmd.MarkFlagRequired("device")
	readCmd.MarkFlagRequired("attribute")

	writeCmd.Flags().StringVarP(&writeDevice, "device", "D", "", "Device name")
	writeCmd.Flags().StringVarP(&writeAttribute, "attribute", "A", "", "Attribute name")
	writeCmd.Flags().StringVarP(&writeValue, "value", "W", "", "Value to write")
	writeCmd.MarkFlagRequired("device")
	writeCmd.MarkFlagRequired("attribute")
	writeCmd.MarkFlagRequired("value")
}
