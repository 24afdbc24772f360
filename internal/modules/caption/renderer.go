package caption

import (
	"fmt"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
)

// Render formats the destination caption from the account's template fields
// and the sequence numbers snapshotted for this photo. Numbers are zero-padded
// to two digits; padding only widens, never truncates.
func Render(fields domain.TemplateFields, daily, history int) string {
	return fmt.Sprintf(`DATE : %s
工作员工姓名 STAFF NAME : %s
当日编号 NUMBER OF THE DAY: %02d
历史编号 HISTORY NUMBER : %02d
照片所在地区 PHOTO LOCATION: %s
`, fields.Date, fields.StaffName, daily, history, fields.PhotoLocation)
}

// WithGPS appends a coordinates line to an already rendered caption.
func WithGPS(caption, lat, lon string) string {
	return caption + fmt.Sprintf("GPS : %s %s\n", lat, lon)
}
