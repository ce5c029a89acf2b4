package i18n

type translation struct {
	en string
	pl string
}

var messages = map[string]translation{
	// generic
	"error.internal":   {"Something went wrong. Please try again later.", "Coś poszło nie tak. Spróbuj ponownie później."},
	"error.validation": {"Invalid request: %s", "Nieprawidłowe żądanie: %s"},
	"error.invalidId":  {"Invalid identifier.", "Nieprawidłowy identyfikator."},
	"error.invalidDate": {"Invalid date, expected format YYYY-MM-DD.",
		"Nieprawidłowa data, oczekiwany format RRRR-MM-DD."},
	"error.routeNotFound": {"Resource not found.", "Nie znaleziono zasobu."},

	// auth
	"auth.missingToken":       {"Authorization header is missing.", "Brak nagłówka autoryzacji."},
	"auth.invalidToken":       {"Invalid token.", "Nieprawidłowy token."},
	"auth.expiredToken":       {"Token has expired.", "Token wygasł."},
	"auth.accessDenied":       {"Access denied.", "Brak dostępu."},
	"auth.invalidCredentials": {"Invalid email or password.", "Nieprawidłowy email lub hasło."},
	"auth.tooManyRequests":    {"Too many requests, slow down.", "Zbyt wiele żądań, zwolnij."},

	// user
	"user.registered":   {"Account created successfully.", "Konto zostało utworzone."},
	"user.loggedIn":     {"Logged in successfully.", "Zalogowano pomyślnie."},
	"user.found":        {"User found.", "Znaleziono użytkownika."},
	"user.list":         {"Users retrieved.", "Pobrano użytkowników."},
	"user.created":      {"User created.", "Utworzono użytkownika."},
	"user.updated":      {"User updated.", "Zaktualizowano użytkownika."},
	"user.deleted":      {"User deleted.", "Usunięto użytkownika."},
	"user.notFound":     {"User not found.", "Nie znaleziono użytkownika."},
	"user.emailTaken":   {"An account with this email already exists.", "Konto z tym adresem email już istnieje."},
	"user.invalidRole":  {"Unknown role %s.", "Nieznana rola %s."},
	"user.roleReserved": {"Only an administrator can change roles.", "Tylko administrator może zmieniać role."},

	// gympass offers
	"offer.list":       {"Offers retrieved.", "Pobrano oferty."},
	"offer.found":      {"Offer found.", "Znaleziono ofertę."},
	"offer.created":    {"Offer created.", "Utworzono ofertę."},
	"offer.updated":    {"Offer updated.", "Zaktualizowano ofertę."},
	"offer.deleted":    {"Offer deleted.", "Usunięto ofertę."},
	"offer.notFound":   {"Gym pass offer not found.", "Nie znaleziono oferty karnetu."},
	"offer.titleTaken": {"An offer titled %s already exists.", "Oferta o tytule %s już istnieje."},

	// purchased gym passes
	"gympass.purchased":          {"Gym pass purchased successfully.", "Karnet został zakupiony."},
	"gympass.status":             {"Gym pass status retrieved.", "Pobrano status karnetu."},
	"gympass.suspended":          {"Gym pass suspended until %s.", "Karnet zawieszony do %s."},
	"gympass.list":               {"Gym passes retrieved.", "Pobrano karnety."},
	"gympass.entry":              {"Entry registered.", "Zarejestrowano wejście."},
	"gympass.notFound":           {"Gym pass not found.", "Nie znaleziono karnetu."},
	"gympass.retroDate":          {"The date cannot be in the past.", "Data nie może być z przeszłości."},
	"gympass.expired":            {"The gym pass has expired.", "Karnet wygasł."},
	"gympass.alreadySuspended":   {"The gym pass is already suspended.", "Karnet jest już zawieszony."},
	"gympass.suspensionAfterEnd": {"The suspension date cannot be after the end date.", "Data zawieszenia nie może być późniejsza niż data końca karnetu."},
	"gympass.notValid":           {"The gym pass is not valid.", "Karnet jest nieważny."},

	// tasks
	"task.created":              {"Task created.", "Utworzono zadanie."},
	"task.found":                {"Task found.", "Znaleziono zadanie."},
	"task.list":                 {"Tasks retrieved.", "Pobrano zadania."},
	"task.updated":              {"Task updated.", "Zaktualizowano zadanie."},
	"task.deleted":              {"Task deleted.", "Usunięto zadanie."},
	"task.approval":             {"Task status changed to %s.", "Status zadania zmieniono na %s."},
	"task.reported":             {"Report sent.", "Wysłano raport."},
	"task.evaluated":            {"Task evaluated.", "Oceniono zadanie."},
	"task.attachmentUpload":     {"Upload URL generated.", "Wygenerowano adres do przesłania pliku."},
	"task.attachmentDownload":   {"Download URL generated.", "Wygenerowano adres do pobrania pliku."},
	"task.notFound":             {"Task not found.", "Nie znaleziono zadania."},
	"task.retroDueDate":         {"The due date cannot be in the past.", "Termin wykonania nie może być z przeszłości."},
	"task.invalidReminder":      {"The reminder must fall between today and the due date.", "Przypomnienie musi przypadać między dzisiejszą datą a terminem wykonania."},
	"task.employeeNotFound":     {"Employee not found.", "Nie znaleziono pracownika."},
	"task.notEmployee":          {"The selected user is not an employee.", "Wybrany użytkownik nie jest pracownikiem."},
	"task.invalidStatus":        {"Invalid status %s.", "Nieprawidłowy status %s."},
	"task.statusAlreadyChanged": {"The task status has already been changed.", "Status zadania został już zmieniony."},
	"task.notAccepted":          {"The task has not been accepted.", "Zadanie nie zostało zaakceptowane."},
	"task.reportNotSent":        {"The report has not been sent yet.", "Raport nie został jeszcze wysłany."},
	"task.invalidMark":          {"The mark must be between 1 and 5.", "Ocena musi mieścić się w przedziale od 1 do 5."},
	"task.alreadyEvaluated":     {"The task has already been evaluated.", "Zadanie zostało już ocenione."},
	"task.invalidAttachment":    {"Invalid attachment.", "Nieprawidłowy załącznik."},
	"task.attachmentNotFound":   {"The report has no attachment.", "Raport nie ma załącznika."},
	"task.uploadFailed":         {"Could not prepare the file transfer.", "Nie udało się przygotować transferu pliku."},

	// individual trainings
	"training.requested":        {"Training requested.", "Wysłano prośbę o trening."},
	"training.found":            {"Training found.", "Znaleziono trening."},
	"training.list":             {"Trainings retrieved.", "Pobrano treningi."},
	"training.accepted":         {"Training accepted.", "Zaakceptowano trening."},
	"training.rejected":         {"Training rejected.", "Odrzucono trening."},
	"training.cancelled":        {"Training cancelled.", "Anulowano trening."},
	"training.notFound":         {"Training not found.", "Nie znaleziono treningu."},
	"training.pastDate":         {"The training date is in the past.", "Data treningu jest z przeszłości."},
	"training.invalidHours":     {"The training must end after it starts.", "Trening musi kończyć się po rozpoczęciu."},
	"training.trainerNotFound":  {"Trainer not found.", "Nie znaleziono trenera."},
	"training.trainerOccupied":  {"The trainer is occupied at that time.", "Trener jest zajęty w tym terminie."},
	"training.userOccupied":     {"You already have a training at that time.", "Masz już trening w tym terminie."},
	"training.alreadyAccepted":  {"The training has already been accepted.", "Trening został już zaakceptowany."},
	"training.alreadyCancelled": {"The training has already been cancelled.", "Trening został już anulowany."},
	"training.alreadyRejected":  {"The training has already been rejected.", "Trening został już odrzucony."},
}
