// handlers/admin/export.go - Spreadsheet export of all teams
package admin

import (
	"fmt"
	"log"
	"strings"
	"time"

	"hackreg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// exportCap bounds the export query; well beyond any plausible event size.
const exportCap = 10000

var exportColumns = []struct {
	Header string
	Width  float64
	Value  func(t *models.Team) interface{}
}{
	{"Registration ID", 18, func(t *models.Team) interface{} { return t.RegistrationID }},
	{"Team Name", 22, func(t *models.Team) interface{} { return t.TeamName }},
	{"College Name", 25, func(t *models.Team) interface{} { return t.CollegeName }},
	{"Team Size", 10, func(t *models.Team) interface{} { return t.TeamSize }},
	{"Status", 18, func(t *models.Team) interface{} { return string(t.Status) }},
	{"Verification Status", 18, func(t *models.Team) interface{} { return string(t.VerificationStatus) }},
	{"Payment Status", 15, func(t *models.Team) interface{} { return t.PaymentStatus() }},
	{"Created At", 12, func(t *models.Team) interface{} { return t.CreatedAt.Format("2006-01-02") }},
	{"Participants", 45, func(t *models.Team) interface{} { return participantList(t) }},
	{"Leader Email", 25, func(t *models.Team) interface{} { return t.LeaderEmail }},
	{"Leader Phone", 15, func(t *models.Team) interface{} { return t.LeaderPhone }},
	{"UTR", 20, func(t *models.Team) interface{} { return t.UTRID }},
}

// ExportExcel streams all teams as an xlsx attachment.
// GET /api/admin/export/excel
func ExportExcel(c *fiber.Ctx) error {
	teams, _, err := teamService.List(exportCap, 0)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to export teams",
		})
	}

	const sheet = "Teams"
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return exportError(c, err)
	}

	for i, col := range exportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return exportError(c, err)
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return exportError(c, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", name), col.Header); err != nil {
			return exportError(c, err)
		}
	}

	for row := range teams {
		team := &teams[row]
		for i, col := range exportColumns {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return exportError(c, err)
			}
			if err := f.SetCellValue(sheet, cell, col.Value(team)); err != nil {
				return exportError(c, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return exportError(c, err)
	}

	filename := fmt.Sprintf("teams_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}

func exportError(c *fiber.Ctx, err error) error {
	log.Printf("❌ Export error: %v", err)
	return c.Status(500).JSON(fiber.Map{
		"success": false,
		"error":   "Failed to export teams",
	})
}

func participantList(t *models.Team) string {
	parts := t.Participants.Data()
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		entries = append(entries, fmt.Sprintf("%s (%s)", p.FullName, p.Email))
	}
	return strings.Join(entries, "; ")
}
