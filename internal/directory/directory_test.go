package directory

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// Compile-time checks.
var (
	_ types.BankDirectory      = (*Bancos)(nil)
	_ types.AgreementDirectory = (*Convenios)(nil)
)

func TestDefault(t *testing.T) {
	bancos, convenios := Default()

	nome, ok := bancos.NomeBanco(1)
	require.True(t, ok)
	assert.Equal(t, "Banco do Brasil S.A.", nome)

	nome, ok = bancos.NomeBanco(104)
	require.True(t, ok)
	assert.Equal(t, "Caixa Econômica Federal", nome)

	_, ok = bancos.NomeBanco(999)
	assert.False(t, ok)

	nome, ok = convenios.NomeConvenio(1, 3659)
	require.True(t, ok)
	assert.Equal(t, "Prefeitura Municipal do Rio de Janeiro", nome)

	_, ok = convenios.NomeConvenio(2, 3659)
	assert.False(t, ok)
}

func TestDefaultIsBuiltOnce(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Bancos, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Default()
		}(i)
	}
	wg.Wait()

	for _, b := range results {
		assert.Same(t, results[0], b)
	}
}

func TestLoadBancosCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bancos.csv")
	require.NoError(t, os.WriteFile(path, []byte("codigo,nome\n001,Banco A\n\n237,Banco B\n"), 0o644))

	b, err := LoadBancos(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	nome, ok := b.NomeBanco(237)
	require.True(t, ok)
	assert.Equal(t, "Banco B", nome)
}

func TestLoadConveniosXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"segmento", "codigo", "nome"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, 6666, "Prefeitura de Teste"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"3", "0031", "Companhia de Energia"}))

	path := filepath.Join(t.TempDir(), "convenios.xlsx")
	require.NoError(t, f.SaveAs(path))

	c, err := LoadConvenios(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	nome, ok := c.NomeConvenio(1, 6666)
	require.True(t, ok)
	assert.Equal(t, "Prefeitura de Teste", nome)

	nome, ok = c.NomeConvenio(3, 31)
	require.True(t, ok)
	assert.Equal(t, "Companhia de Energia", nome)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bancos.csv")
	require.NoError(t, os.WriteFile(bad, []byte("codigo,nome\n001,Banco A\nabc,Banco B\n"), 0o644))
	_, err := LoadBancos(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")

	badConvenio := filepath.Join(dir, "convenios.csv")
	require.NoError(t, os.WriteFile(badConvenio, []byte("segmento,codigo,nome\nx,1,Teste\n"), 0o644))
	_, err = LoadConvenios(badConvenio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid segmento")

	_, err = LoadBancos(filepath.Join(dir, "bancos.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")

	_, err = LoadBancos(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewBancosCopiesInput(t *testing.T) {
	src := map[int]string{1: "Banco A"}
	b := NewBancos(src)
	src[1] = "mudou"

	nome, _ := b.NomeBanco(1)
	assert.Equal(t, "Banco A", nome)
}
