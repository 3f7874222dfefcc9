// Package assistant предоставляет ответчик чата-помощника.
//
// Внешний AI-сервис остаётся за границей системы; интерфейс Responder —
// точка подключения реального клиента. Ответчик по умолчанию отвечает
// заготовленными фразами по ключевым словам.
package assistant

import (
	"context"
	"strings"
)

// Responder формирует ответ помощника на сообщение пользователя.
type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
}

const fallbackReply = "Maaf, saya belum memahami pertanyaan Anda. " +
	"Silakan tanyakan tentang layanan, jadwal, atau pembatalan reservasi."

var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"jam", "buka", "operasional"},
		reply:    "Mal Pelayanan Publik buka setiap hari kerja pukul 08:00 - 15:00 WIB.",
	},
	{
		keywords: []string{"batal", "membatalkan"},
		reply: "Untuk membatalkan reservasi, buka halaman tiket aktif Anda dan " +
			"tekan tombol Batalkan, lalu konfirmasi pembatalan.",
	},
	{
		keywords: []string{"daftar", "booking", "reservasi", "antri"},
		reply: "Pilih layanan di halaman utama, tentukan tanggal dan jam kedatangan, " +
			"lalu konfirmasi. Kode booking akan muncul di tiket Anda.",
	},
	{
		keywords: []string{"ktp"},
		reply:    "Layanan e-KTP melayani pembuatan dan perbaikan KTP Elektronik, sekitar 10 menit per orang.",
	},
	{
		keywords: []string{"paspor"},
		reply:    "Layanan Paspor melayani pembuatan paspor baru dan penggantian, sekitar 20 menit per orang.",
	},
	{
		keywords: []string{"sim"},
		reply:    "Layanan SIM A/C melayani perpanjangan Surat Izin Mengemudi, sekitar 5 menit per orang.",
	},
}

// Canned отвечает заготовленными фразами без обращения к внешним сервисам.
type Canned struct{}

// NewCanned создаёт ответчик по умолчанию.
func NewCanned() *Canned {
	return &Canned{}
}

// Reply подбирает ответ по ключевым словам сообщения.
func (c *Canned) Reply(_ context.Context, text string) (string, error) {
	lowered := strings.ToLower(text)
	for _, entry := range cannedReplies {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				return entry.reply, nil
			}
		}
	}
	return fallbackReply, nil
}
