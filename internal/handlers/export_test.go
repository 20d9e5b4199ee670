package handlers

// FindCard exposes findCard to the external handlers_test package.
var FindCard = findCard
