package services

import (
	"fmt"
	"time"
)

// MaxNumberAttempts bounds the candidates tried for one identifier when the store
// reports the previous candidate as taken.
const MaxNumberAttempts = 20

const (
	timestampLayout = "20060102150405"
	dateLayout      = "20060102"
)

// OrderNumber returns "ORD-yyyyMMddHHmmss" for attempt 0 and "ORD-yyyyMMddHHmmss-<attempt>" after.
func OrderNumber(now time.Time, attempt int) string {
	return timestamped("ORD-", now, attempt)
}

// DeliveryNumber is OrderNumber with the "DEL-" prefix.
func DeliveryNumber(now time.Time, attempt int) string {
	return timestamped("DEL-", now, attempt)
}

// EmployeeNumber returns "DLV-yyyyMMdd-nnnn" where seq is zero padded to four digits.
func EmployeeNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("DLV-%s-%04d", now.UTC().Format(dateLayout), seq)
}

func timestamped(prefix string, now time.Time, attempt int) string {
	number := prefix + now.UTC().Format(timestampLayout)
	if attempt > 0 {
		number = fmt.Sprintf("%s-%d", number, attempt)
	}
	return number
}
