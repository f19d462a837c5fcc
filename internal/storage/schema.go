package storage

const schema = `
-- 'utente' holds registered accounts. The password column stores a bcrypt hash.
CREATE TABLE IF NOT EXISTS utente (
    email TEXT PRIMARY KEY,
    password TEXT NOT NULL,
    nome TEXT NOT NULL,
    cognome TEXT NOT NULL,
    data_nascita TEXT NOT NULL
);

-- 'evento' holds the events. Dates are YYYY-MM-DD text.
CREATE TABLE IF NOT EXISTS evento (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    titolo TEXT NOT NULL,
    descrizione TEXT NOT NULL,
    data_evento TEXT NOT NULL,
    organizzatore TEXT,
    capienza INTEGER NOT NULL,
    immagine_path TEXT,

    FOREIGN KEY(organizzatore) REFERENCES utente(email) ON DELETE CASCADE
);

-- 'partecipazione' records one attendee registered to one event.
CREATE TABLE IF NOT EXISTS partecipazione (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nome TEXT NOT NULL,
    cognome TEXT NOT NULL,
    data_nascita TEXT NOT NULL,
    evento_id INTEGER NOT NULL,

    FOREIGN KEY(evento_id) REFERENCES evento(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_evento_organizzatore ON evento(organizzatore);
CREATE INDEX IF NOT EXISTS idx_partecipazione_evento ON partecipazione(evento_id);
`
