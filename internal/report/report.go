// Package report renders shop views as downloadable PDF documents.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	analyticsdomain "github.com/smallbiznis/ispdesk/internal/analytics/domain"
	"github.com/smallbiznis/ispdesk/internal/analytics/engine"
	"github.com/smallbiznis/ispdesk/internal/clock"
	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
	"go.uber.org/fx"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultTitleCompany = "ISP Desk"

var printer = message.NewPrinter(language.English)

type Provider interface {
	DuesReport(ctx context.Context, view analyticsdomain.PaymentsView) (io.Reader, error)
	SuggestionsReport(ctx context.Context, view analyticsdomain.SuggestionsView) (io.Reader, error)
}

var Module = fx.Module("report",
	fx.Provide(New),
)

type PDFProvider struct {
	clock clock.Clock
}

func New(clk clock.Clock) Provider {
	return &PDFProvider{clock: clk}
}

// DuesReport renders the derived payment dues table.
func (p *PDFProvider) DuesReport(ctx context.Context, view analyticsdomain.PaymentsView) (io.Reader, error) {
	m := p.document()
	p.header(m, "Payment Dues", view.Settings)

	m.AddRow(10,
		text.NewCol(4, "Customer", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Plan", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Due date", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Status", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	var total, pending float64
	for _, row := range view.Rows {
		total += row.Amount
		if row.Status != engine.StatusActive {
			pending += row.Amount
		}
		due := row.DueDate
		if due == "" {
			due = "-"
		}
		m.AddRow(8,
			text.NewCol(4, row.CustomerName, props.Text{Size: 9}),
			text.NewCol(3, row.Plan, props.Text{Size: 9}),
			text.NewCol(2, Amount(row.Amount, view.Settings), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, due, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, row.Status, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total billed", props.Text{Size: 9, Top: 3}),
		text.NewCol(2, Amount(total, view.Settings), props.Text{Size: 9, Top: 3, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Pending", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, Amount(pending, view.Settings), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	return generate(m)
}

// SuggestionsReport renders the headline metrics and recommendations.
func (p *PDFProvider) SuggestionsReport(ctx context.Context, view analyticsdomain.SuggestionsView) (io.Reader, error) {
	m := p.document()
	p.header(m, view.Suggestions.Title, view.Settings)

	for _, line := range view.Suggestions.Headlines {
		m.AddRow(8, text.NewCol(12, "- "+asciiSafe(line), props.Text{Size: 10}))
	}

	m.AddRow(14, text.NewCol(12, "Recommendations", props.Text{
		Size:  13,
		Style: fontstyle.Bold,
		Top:   5,
	}))
	for i, rec := range view.Suggestions.Recommendations {
		m.AddRow(8, text.NewCol(12, fmt.Sprintf("%d. %s", i+1, asciiSafe(rec)), props.Text{Size: 10}))
	}

	return generate(m)
}

func (p *PDFProvider) document() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func (p *PDFProvider) header(m core.Maroto, title string, settings settingsdomain.Settings) {
	company := strings.TrimSpace(settings.CompanyName)
	if company == "" {
		company = defaultTitleCompany
	}

	m.AddRow(12,
		text.NewCol(8, company, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, "Generated "+p.clock.Now().Format("2006-01-02"), props.Text{Size: 9, Align: align.Right}),
	)
	contact := strings.TrimSpace(strings.Join(nonEmpty(settings.SupportEmail, settings.SupportPhone), " | "))
	m.AddRow(8,
		col.New(8).Add(
			text.New(settings.Address, props.Text{Size: 8}),
		),
		text.NewCol(4, contact, props.Text{Size: 8, Align: align.Right}),
	)
	m.AddRow(16, text.NewCol(12, title, props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Top:   6,
	}))
}

func generate(m core.Maroto) (io.Reader, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

// Amount renders an amount with the ISO currency code, e.g. "INR 1,234.50".
// The core PDF fonts cannot draw every currency symbol.
func Amount(amount float64, settings settingsdomain.Settings) string {
	code := strings.ToUpper(strings.TrimSpace(settings.Currency))
	if code == "" {
		code = settingsdomain.DefaultCurrency
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + code + " " + printer.Sprintf("%.2f", amount)
}

// asciiSafe swaps currency symbols the core fonts lack for their codes.
func asciiSafe(s string) string {
	return strings.NewReplacer("₹", "INR ", "€", "EUR ", "£", "GBP ").Replace(s)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
