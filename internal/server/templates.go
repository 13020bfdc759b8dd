package server

import "html/template"

// uploadPage is the single HTML page of the service: pick a file, pick
// a material, submit to /api/calculate.
var uploadPage = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>STL Mass Calculator</title>
</head>
<body>
  <h1>STL Mass Calculator</h1>
  <form action="/api/calculate" method="post" enctype="multipart/form-data">
    <p><input type="file" name="file" accept=".stl" required></p>
    <p>
      <select name="material_id">
        {{range .Materials}}
        <option value="{{.ID}}"{{if eq .ID $.DefaultID}} selected{{end}}>{{.Name}} ({{.Density}} g/cm&sup3;)</option>
        {{end}}
      </select>
    </p>
    <p><button type="submit">Calculate</button></p>
  </form>
</body>
</html>
`))
