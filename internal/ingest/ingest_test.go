package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nudge/internal/common"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

const clientsCSV = `client_code,name,status,age,city,avg_monthly_balance_KZT
c1,Айдана,Премиум,34,Алматы,650000.50
c2,Данияр,Стандарт,27,Астана,120000
`

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", clientsCSV)
	writeFile(t, dir, "transactions_q3.csv", `client_code,date,category,amount,currency
c1,2025-07-01,Такси,1500,KZT
c1,2025-07-02,Продукты питания,8000,KZT
`)
	writeFile(t, dir, "transfers_q3.csv", `client_code,date,type,direction,amount,currency
c2,2025-07-03,salary_in,in,300000,KZT
`)

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	require.Len(t, ds.Clients, 2)
	assert.Equal(t, "Айдана", ds.Clients[0].Name)
	assert.Equal(t, "Алматы", ds.Clients[0].City)
	assert.Equal(t, 34, ds.Clients[0].Age)
	assert.InDelta(t, 650000.50, ds.Clients[0].AvgMonthlyBalance, 1e-9)

	require.Len(t, ds.Transactions, 2)
	assert.Equal(t, "Такси", ds.Transactions[0].Category)
	assert.InDelta(t, 1500, ds.Transactions[0].Amount, 1e-9)

	require.Len(t, ds.Transfers, 1)
	assert.Equal(t, "salary_in", ds.Transfers[0].Type)
	assert.Equal(t, "in", ds.Transfers[0].Direction)
}

func TestLoadDataset_SniffsByColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", clientsCSV)
	// Deliberately unhelpful file names: type must come from the header.
	writeFile(t, dir, "data_a.csv", `client_code,date,category,amount
c1,2025-07-01,Кино,900
`)
	writeFile(t, dir, "data_b.csv", `client_code,date,type,direction,amount
c1,2025-07-01,fx_buy,out,50000
`)
	writeFile(t, dir, "data_c.csv", `some,unrelated,columns
1,2,3
`)
	writeFile(t, dir, "notes.txt", "not a csv at all")

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	assert.Len(t, ds.Transactions, 1)
	assert.Len(t, ds.Transfers, 1)
}

func TestLoadDataset_ConcatenatesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", clientsCSV)
	writeFile(t, dir, "tx_jan.csv", "client_code,date,category,amount\nc1,2025-01-05,Такси,100\n")
	writeFile(t, dir, "tx_feb.csv", "client_code,date,category,amount\nc1,2025-02-05,Такси,200\n")

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	assert.Len(t, ds.Transactions, 2)
}

func TestLoadDataset_MissingRosterIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "transactions.csv", "client_code,date,category,amount\n")

	_, err := LoadDataset(dir)
	assert.ErrorIs(t, err, common.ErrClientsNotFound)
}

func TestLoadDataset_RosterByLooseName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bank_clients_export.csv", clientsCSV)

	ds, err := LoadDataset(dir)
	require.NoError(t, err)
	assert.Len(t, ds.Clients, 2)
}

func TestLoadClients_DeduplicatesCodes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", `client_code,name
c1,Айдана
c1,Дубликат
c2,Данияр
`)

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	require.Len(t, ds.Clients, 2)
	assert.Equal(t, "Айдана", ds.Clients[0].Name)
}

func TestLoadClients_RequiredColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", "code,title\n1,x\n")

	_, err := LoadDataset(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestLoadClients_EmptyRoster(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", "client_code,name\n")

	_, err := LoadDataset(dir)
	assert.ErrorIs(t, err, common.ErrEmptyRoster)
}

func TestLoadDataset_UTF8RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", "client_code,name\nc1,Гүлнар\n")
	writeFile(t, dir, "tx.csv", "client_code,date,category,amount\nc1,2025-07-01,Ювелирные украшения,5000\n")

	ds, err := LoadDataset(dir)
	require.NoError(t, err)

	assert.Equal(t, "Гүлнар", ds.Clients[0].Name)
	assert.Equal(t, "Ювелирные украшения", ds.Transactions[0].Category)
}

func TestLoadDataset_BOMHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", "\uFEFFclient_code,name\nc1,Айдана\n")

	ds, err := LoadDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, "c1", ds.Clients[0].ClientCode)
}

func TestInspectFolder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clients.csv", clientsCSV)
	writeFile(t, dir, "broken.csv", "")

	reports, err := InspectFolder(dir, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "broken.csv", reports[0].Name)
	assert.Error(t, reports[0].Err)

	assert.Equal(t, "clients.csv", reports[1].Name)
	require.NoError(t, reports[1].Err)
	assert.Contains(t, reports[1].Columns, "client_code")
	assert.Equal(t, 2, reports[1].Rows)
	assert.Len(t, reports[1].Preview, 2)
}
