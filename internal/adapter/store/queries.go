package store

const requestColumns = `id, item_names, item_quantity, requester_name, requester_email,
	requester_phone, owner, created_at, updated_at`

const queryInsertRequest = `
	INSERT INTO food_requests
		(item_names, item_quantity, requester_name, requester_email, requester_phone, owner)
	VALUES ($1::jsonb, $2::jsonb, $3, $4, $5, $6)
	RETURNING ` + requestColumns

// $2 is NULL when the filter does not constrain item names.
const queryFindRequests = `
	SELECT ` + requestColumns + `
	FROM food_requests
	WHERE owner = $1
	  AND ($2::jsonb IS NULL OR item_names = $2::jsonb)
	ORDER BY created_at, id`

const queryFindOneRequest = queryFindRequests + `
	LIMIT 1`

const queryDeleteRequest = `DELETE FROM food_requests WHERE id = $1`
