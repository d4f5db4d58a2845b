package infra

// pdf.go gera o relatório de fechamento de caixa em PDF via go-pdf/fpdf.
// Uma página A5 com o resumo da sessão (saldo inicial, entradas, saídas,
// saldo apurado, total vendido, saldo declarado) e a lista de movimentos.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"barcontrol/internal/ledger"
	"barcontrol/internal/model"
	"barcontrol/pkg/brl"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// RelatorioCaixa reúne os números já dobrados pelo ledger para impressão.
type RelatorioCaixa struct {
	Caixa        *model.Caixa
	Movimentos   []model.CaixaMov
	Fluxo        ledger.Fluxo
	SaldoApurado decimal.Decimal
	TotalVendido decimal.Decimal
}

// GenerateCaixaPDF escreve o relatório em storagePath e devolve o caminho
// absoluto do arquivo gerado.
func GenerateCaixaPDF(rel RelatorioCaixa, storagePath string, loc *time.Location) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: criar diretório: %w", err)
	}

	fileName := fmt.Sprintf("caixa_%s.pdf", rel.Caixa.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Bar Control", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Relatorio de caixa", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Aberto em: "+rel.Caixa.AbertoEm.In(loc).Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if rel.Caixa.FechadoEm != nil {
		pdf.CellFormat(contentW, 5, "Fechado em: "+rel.Caixa.FechadoEm.In(loc).Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	linha := func(rotulo string, valor decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(contentW*0.6, 6, rotulo, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, brl.Format(valor), "", 1, "R", false, 0, "")
	}

	linha("Saldo inicial", rel.Caixa.SaldoInicial, false)
	linha("Entradas", rel.Fluxo.Entradas, false)
	linha("Saidas", rel.Fluxo.Saidas, false)
	linha("Saldo apurado", rel.SaldoApurado, true)
	linha("Total vendido na sessao", rel.TotalVendido, false)
	if rel.Caixa.SaldoFinal != nil {
		linha("Saldo declarado no fechamento", *rel.Caixa.SaldoFinal, true)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW*0.30, 5, "Data", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.22, 5, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.22, 5, "Valor", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.26, 5, "Descricao", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, m := range rel.Movimentos {
		desc := "-"
		if m.Descricao != nil && *m.Descricao != "" {
			desc = *m.Descricao
		}
		pdf.CellFormat(contentW*0.30, 5, m.CriadoEm.In(loc).Format("02/01 15:04:05"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.22, 5, m.Tipo, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.22, 5, brl.Format(m.Valor), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.26, 5, desc, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: gravar %s: %w", filePath, err)
	}
	return filePath, nil
}
