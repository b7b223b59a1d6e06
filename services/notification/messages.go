package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"coolrentals/models"
)

type field struct {
	Label string
	Value string
}

var noticeTemplate = template.Must(template.New("notice").Parse(
	`<h2>{{.Heading}}</h2>
{{range .Fields}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}<p>{{.Footer}}</p>
`))

// notice renders a heading plus labelled fields as both plain text and escaped HTML.
func notice(subject, intro, footer string, fields ...field) Message {
	for i := range fields {
		if strings.TrimSpace(fields[i].Value) == "" {
			fields[i].Value = "N/A"
		}
	}

	var text strings.Builder
	text.WriteString(intro + ":\n\n")
	for _, f := range fields {
		fmt.Fprintf(&text, "%s: %s\n", f.Label, f.Value)
	}
	text.WriteString("\n" + footer + "\n")

	var html bytes.Buffer
	err := noticeTemplate.Execute(&html, struct {
		Heading string
		Fields  []field
		Footer  string
	}{subject, fields, footer})
	msg := Message{Subject: subject, Text: text.String()}
	if err == nil {
		msg.HTML = html.String()
	}
	return msg
}

const adminPanelFooter = "Please check the admin panel for details."

func RentalInquiryMessage(inq models.RentalInquiry) Message {
	unit := strings.TrimSpace(inq.UnitDetails.Brand + " " + inq.UnitDetails.Model)
	return notice("New Rental Inquiry Received", "A new rental inquiry has been received", adminPanelFooter,
		field{"Name", inq.Name},
		field{"Email", inq.Email},
		field{"Phone", inq.Phone},
		field{"Duration", string(inq.Duration)},
		field{"Message", inq.Message},
		field{"Unit", unit},
		field{"Unit ID", inq.UnitID.Hex()},
	)
}

func ServiceBookingMessage(b models.ServiceBooking, serviceTitle string) Message {
	return notice("New Service Booking", "A new service booking has been created", adminPanelFooter,
		field{"Service", serviceTitle},
		field{"Customer", b.Name},
		field{"Phone", b.Phone},
		field{"Date", b.PreferredDate},
		field{"Time", b.PreferredTime},
		field{"Address", b.Address},
		field{"Notes", b.Notes},
	)
}

func ServiceRequestMessage(r models.ServiceRequest) Message {
	return notice("New Service Request Received", "A new service request has been received", adminPanelFooter,
		field{"Name", r.Name},
		field{"AC Type", string(r.ACType)},
		field{"Brand", r.Brand},
		field{"Model", r.Model},
		field{"Description", r.Description},
		field{"Address", r.Address},
		field{"Contact", r.ContactNumber},
	)
}

func LeadMessage(l models.Lead) Message {
	return notice("New Lead Captured", "A new lead has been captured", "Please contact the lead soon.",
		field{"Name", l.Name},
		field{"Phone", l.Phone},
		field{"Message", l.Message},
	)
}

func VendorListingMessage(v models.VendorListing) Message {
	return notice("New Vendor Listing Request", "A vendor has asked to list their inventory", adminPanelFooter,
		field{"Name", v.Name},
		field{"Business", v.BusinessName},
		field{"Phone", v.Phone},
		field{"Message", v.Message},
	)
}

func ContactMessage(c models.Contact) Message {
	return notice("New Contact Form Submission", "A new contact form submission has been received", adminPanelFooter,
		field{"Name", c.Name},
		field{"Email", c.Email},
		field{"Phone", c.Phone},
		field{"Message", c.Message},
	)
}
