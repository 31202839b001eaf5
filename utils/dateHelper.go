package utils

import "time"

// Invoice documents carry dates in the issuer's timezone.
var invoiceLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// FormatDate renders a document date as dd-MM-yyyy; zero time renders empty.
func FormatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.In(invoiceLocation).Format("02-01-2006")
}

func FormatDatePtr(date *time.Time) string {
	if date == nil {
		return ""
	}
	return FormatDate(*date)
}
