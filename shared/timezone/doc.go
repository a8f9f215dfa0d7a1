// Package timezone keeps every stay date, deadline and audit stamp in the hotel's
// local time. The zone comes from APP_TIMEZONE (an IANA name such as
// "Asia/Colombo") passed to Load at start-up; until then, and in tests, it is UTC.
package timezone
