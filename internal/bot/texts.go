package bot

import (
	"fmt"

	"bahtbot/internal/core"
)

// User-facing reply texts, in Thai like the bot's command keywords.

func RecordedText(t core.Transaction) string {
	return fmt.Sprintf("✅ บันทึกแล้ว: %s %s %d บาท [%s]\nยอดคงเหลือ: %d บาท",
		string(t.Type), t.Item, t.Amount, t.CategoryOrDefault(), t.Balance)
}

func BalanceText(balance int64) string {
	return fmt.Sprintf("💰 ยอดคงเหลือปัจจุบัน: %d บาท", balance)
}

func LowBalanceText(balance, threshold int64) string {
	return fmt.Sprintf("⚠️ ยอดคงเหลือต่ำกว่า %d บาท! ยอดปัจจุบัน: %d บาท", threshold, balance)
}

func BadAmountText(line string) string {
	return fmt.Sprintf("❌ จำนวนเงินไม่ถูกต้อง: %s", line)
}

func BadFormatText(line string) string {
	return fmt.Sprintf("❌ รูปแบบไม่ถูกต้อง: %s\nตัวอย่าง: จ่าย ข้าว 50 อาหาร", line)
}

// StoreFailureText is the generic apology for persistence failures; the
// detailed error goes to the server log only.
const StoreFailureText = "❌ ไม่สามารถบันทึกข้อมูลได้ โปรดลองใหม่อีกครั้ง"

func DailySummaryText(s core.Summary) string {
	return fmt.Sprintf("📊 สรุปประจำวัน %s\nรับ: %d บาท\nจ่าย: %d บาท\nคงเหลือ: %d บาท",
		s.End.Format(core.DateLayout), s.Income, s.Expense, s.Balance)
}

func WeeklySummaryText(s core.Summary) string {
	return fmt.Sprintf("📊 สรุปรายสัปดาห์ (%s - %s)\nรับ: %d บาท\nจ่าย: %d บาท\nคงเหลือ: %d บาท",
		s.Start.Format(core.DateLayout), s.End.Format(core.DateLayout), s.Income, s.Expense, s.Balance)
}

func BackupText(filename string) string {
	return fmt.Sprintf("📁 สำรองข้อมูลอัตโนมัติ: %s", filename)
}
