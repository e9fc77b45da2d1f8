package sweep_expired

// Response итог прогона
type Response struct {
	Due     int // Найдено бронирований, чей слот уже начался
	Expired int // Реально помечено в этом прогоне
	Failed  int // Ошибки по отдельным записям (пропущены)
}
