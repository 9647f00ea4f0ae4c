package renderer

import (
	"fmt"

	"github.com/etnz/cryptofolio"
)

// AlertMessage returns the subject and the plain text body of the mail sent
// when zakat is due.
func AlertMessage(r *cryptofolio.Report) (subject, body string) {
	subject = fmt.Sprintf("[Zakat Alert] Zakat payment due - %s", r.Time.UTC().Format("2006-01-02"))
	body = renderTemplate("alert", "alert.txt", nil, NewDashboard(r))
	return subject, body
}
