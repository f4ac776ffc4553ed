package telegram

import (
	"fmt"
	"strings"
	"time"

	"P2H-backend/internal/p2h"
	"P2H-backend/internal/shift"
	"P2H-backend/internal/vehicles"
)

var monthNamesID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatDateID renders a YYYY-MM-DD date as e.g. "03 Maret 2025".
func formatDateID(date string) string {
	t, err := time.Parse(shift.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), monthNamesID[t.Month()-1], t.Year())
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

const divider = "━━━━━━━━━━━━━━━━━━━━"

// formatP2HMessage builds the HTML alert for a problem report.
func formatP2HMessage(v vehicles.Vehicle, r p2h.Report, loc *time.Location) string {
	emoji, statusText := "⚠️", "WARNING (PERLU PERBAIKAN)"
	if r.OverallStatus == p2h.StatusAbnormal {
		emoji, statusText = "❌", "ABNORMAL (STOP OPERASI)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>P2H ALERT: %s</b>\n%s\n", emoji, statusText, divider)
	fmt.Fprintf(&b, "<b>Unit:</b> <code>%s</code>\n", v.HullNumber)
	fmt.Fprintf(&b, "<b>Tipe:</b> %s\n", v.VehicleType)
	fmt.Fprintf(&b, "<b>Merk/Plat:</b> %s / %s\n\n", orDash(v.Brand), v.PlateNumber)
	fmt.Fprintf(&b, "<b>📅 Detail Pemeriksaan:</b>\n")
	fmt.Fprintf(&b, "<b>Tanggal:</b> %s\n", formatDateID(r.SubmissionDate))
	fmt.Fprintf(&b, "<b>Waktu:</b> %s WITA\n", r.SubmissionTime.In(loc).Format("15:04"))
	fmt.Fprintf(&b, "<b>Shift:</b> %d\n\n", r.ShiftNumber)
	fmt.Fprintf(&b, "<b>📝 Status Akhir:</b> %s\n\n", strings.ToUpper(string(r.OverallStatus)))
	fmt.Fprintf(&b, "<b>⚠️ Tindakan:</b>\nHarap segera melakukan pengecekan unit di workshop terdekat.\n")
	fmt.Fprintf(&b, "%s\n<i>Sistem P2H Digital</i>", divider)
	return b.String()
}

// formatExpiryMessage builds the HTML alert for an STNK/KIR document that is
// about to expire (or already has).
func formatExpiryMessage(doc vehicles.ExpiringDocument) string {
	emoji, urgency := "⚠️", "🟡 <b>PERINGATAN</b>"
	switch {
	case doc.DaysLeft <= 0:
		emoji, urgency = "🚫", "🚨 <b>SUDAH EXPIRED (STOP OPERASI)</b>"
	case doc.DaysLeft <= 7:
		emoji, urgency = "🚨", "🔴 <b>SANGAT SEGERA</b>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>EXPIRY ALERT: %s</b>\n%s\n", emoji, doc.DocType, divider)
	fmt.Fprintf(&b, "<b>Unit:</b> <code>%s</code>\n", doc.Vehicle.HullNumber)
	fmt.Fprintf(&b, "<b>Plat Nomor:</b> %s\n\n", doc.Vehicle.PlateNumber)
	fmt.Fprintf(&b, "<b>📅 Detail Dokumen:</b>\n")
	fmt.Fprintf(&b, "<b>Jenis:</b> %s\n", doc.DocType)
	fmt.Fprintf(&b, "<b>Tanggal Expired:</b> %s\n", formatDateID(doc.ExpiryDate))
	fmt.Fprintf(&b, "<b>Sisa Waktu:</b> <b>%d Hari Lagi</b>\n\n", doc.DaysLeft)
	fmt.Fprintf(&b, "<b>Status:</b> %s\n\n", urgency)
	fmt.Fprintf(&b, "<b>💡 Info:</b>\nHarap segera memproses perpanjangan dokumen agar operasional tidak terganggu.\n")
	fmt.Fprintf(&b, "%s\n<i>Sistem Monitoring Asset</i>", divider)
	return b.String()
}
