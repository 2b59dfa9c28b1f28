package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkhaus/inkhaus/pkg/device"
)

// Header names devices identify themselves with. The firmware sends the
// MAC in ID and its provisioned credential in Access-Token.
const (
	headerID              = "ID"
	headerAccessToken     = "Access-Token"
	headerBatteryVoltage  = "Battery-Voltage"
	headerFirmwareVersion = "Firmware-Version"
	headerRSSI            = "RSSI"
)

// statusReport extracts the optional telemetry headers. Unparseable
// values are treated as absent; a bad header must never fail a poll.
func statusReport(c *gin.Context) device.StatusReport {
	var report device.StatusReport

	if raw := c.GetHeader(headerBatteryVoltage); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			report.BatteryVoltage = &v
		}
	}
	report.FirmwareVersion = c.GetHeader(headerFirmwareVersion)
	if raw := c.GetHeader(headerRSSI); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			report.RSSI = &v
		}
	}
	return report
}
